package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mmdatafocus/factory_backend/config"
	"github.com/mmdatafocus/factory_backend/models"
	"github.com/mmdatafocus/factory_backend/models/reports"
	"github.com/mmdatafocus/factory_backend/utils"
)

func main() {
	out := flag.String("out", "", "Output xlsx path (default dashboard-<date>.xlsx)")
	upload := flag.Bool("upload", false, "Upload the workbook to GCS_BUCKET under dashboards/")
	publishAlerts := flag.Bool("publish-alerts", false, "Publish the operational alert counts to PUBSUB_ALERTS_TOPIC")
	migrate := flag.Bool("migrate", false, "Run AutoMigrate before computing")
	flag.Parse()

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.SetLogLevel(settings.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), settings.DashboardTimeout())
	defer cancel()

	config.ConnectDatabaseWithRetry(settings)
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	if *migrate {
		if err := models.MigrateTable(db); err != nil {
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
	}

	loc := settings.Location()
	dashboard := reports.NewDashboard(reports.NewGormSource(db), config.GetLogger(), loc)
	dashboard.SetSlowThreshold(time.Duration(settings.ReportSlowMs) * time.Millisecond)
	data, err := dashboard.GetDashboardData(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to compute dashboard: %v\n", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := reports.WriteDashboardWorkbook(data, &buf); err != nil {
		fmt.Fprintf(os.Stderr, "failed to render workbook: %v\n", err)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("dashboard-%s.xlsx", time.Now().In(loc).Format("2006-01-02"))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)

	if *upload {
		objectName := "dashboards/" + filepath.Base(path)
		url, err := utils.UploadFileToGCS(ctx, settings.GCSBucket, settings.GCSCredentialsJSON, objectName, utils.XlsxContentType, bytes.NewReader(buf.Bytes()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "upload failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Uploaded %s\n", url)
	}

	if *publishAlerts {
		client, err := config.GetPubSubClient(ctx, settings.PubSubProjectId)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pubsub client: %v\n", err)
			os.Exit(1)
		}
		defer config.ClosePubSub()
		id, err := config.PublishJSON(ctx, client, settings.PubSubAlertsTopic, data.OperationalAlerts, map[string]string{
			"kind":        "operational-alerts",
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "publish failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Published operational alerts (message_id=%s)\n", id)
	}
}
