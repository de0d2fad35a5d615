package models

type ProductionOrderStatus string

const (
	ProductionOrderStatusPending    ProductionOrderStatus = "PENDING"
	ProductionOrderStatusInProgress ProductionOrderStatus = "IN_PROGRESS"
	ProductionOrderStatusCompleted  ProductionOrderStatus = "COMPLETED"
	ProductionOrderStatusCancelled  ProductionOrderStatus = "CANCELLED"
)

type OperationStatus string

const (
	OperationStatusPending    OperationStatus = "PENDING"
	OperationStatusInProgress OperationStatus = "IN_PROGRESS"
	OperationStatusCompleted  OperationStatus = "COMPLETED"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "PENDING"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ActiveOrderStatuses are the customer order states counted as open work.
var ActiveOrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusInProgress}

type QualityCheckStatus string

const (
	QualityCheckStatusPending    QualityCheckStatus = "PENDING"
	QualityCheckStatusInProgress QualityCheckStatus = "IN_PROGRESS"
	QualityCheckStatusCompleted  QualityCheckStatus = "COMPLETED"
	QualityCheckStatusFailed     QualityCheckStatus = "FAILED"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

type StockAlertStatus string

const (
	StockAlertStatusCritical StockAlertStatus = "CRITICAL"
	StockAlertStatusWarning  StockAlertStatus = "WARNING"
	StockAlertStatusOk       StockAlertStatus = "OK"
)
