package memory

import (
	"time"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

// seedOrders returns the demo data set served by a freshly started instance
// running on the memory driver.
func seedOrders() []order.Order {
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []order.Order{
		{
			ID:         "ORD-1001",
			CustomerID: "CUST001",
			Items: []order.OrderItem{
				{ProductID: "PROD001", ProductName: `Laptop Pro 15"`, Quantity: 2, Price: 45900},
				{ProductID: "PROD002", ProductName: "Wireless Mouse", Quantity: 1, Price: 890},
			},
			ShippingAddress: order.ShippingAddress{
				Name:       "John Doe",
				Phone:      "0812345678",
				Address:    "123 Main Street, Sukhumvit 21",
				Province:   "Bangkok",
				PostalCode: "10110",
			},
			Note:        "Please deliver before 5 PM",
			Status:      order.StatusDelivered,
			Subtotal:    92690,
			ShippingFee: 100,
			Total:       92790,
			CreatedAt:   ts("2026-01-28T10:30:00Z"),
			UpdatedAt:   ts("2026-01-28T15:30:00Z"),
		},
		{
			ID:         "ORD-1002",
			CustomerID: "CUST002",
			Items: []order.OrderItem{
				{ProductID: "PROD003", ProductName: "Office Chair Ergonomic", Quantity: 5, Price: 8500},
			},
			ShippingAddress: order.ShippingAddress{
				Name:       "Jane Smith",
				Phone:      "0898765432",
				Address:    "456 Business Center, Sathorn Road",
				Province:   "Bangkok",
				PostalCode: "10120",
			},
			Note:        "Corporate order - Invoice required",
			Status:      order.StatusProcessing,
			Subtotal:    42500,
			ShippingFee: 150,
			Total:       42650,
			CreatedAt:   ts("2026-01-29T14:20:00Z"),
			UpdatedAt:   ts("2026-01-29T16:20:00Z"),
		},
		{
			ID:         "ORD-1003",
			CustomerID: "CUST003",
			Items: []order.OrderItem{
				{ProductID: "PROD002", ProductName: "Wireless Mouse", Quantity: 10, Price: 890},
			},
			ShippingAddress: order.ShippingAddress{
				Name:       "Bob Wilson",
				Phone:      "0823456789",
				Address:    "789 Tech Park, Rama 4 Road",
				Province:   "Bangkok",
				PostalCode: "10500",
			},
			Status:      order.StatusPending,
			Subtotal:    8900,
			ShippingFee: 50,
			Total:       8950,
			CreatedAt:   ts("2026-01-30T09:15:00Z"),
			UpdatedAt:   ts("2026-01-30T09:15:00Z"),
		},
		{
			ID:         "ORD-1004",
			CustomerID: "CUST004",
			Items: []order.OrderItem{
				{ProductID: "PROD004", ProductName: "Desk Lamp LED", Quantity: 3, Price: 1200},
			},
			ShippingAddress: order.ShippingAddress{
				Name:       "Alice Brown",
				Phone:      "0834567890",
				Address:    "321 Home Plaza, Petchaburi Road",
				Province:   "Bangkok",
				PostalCode: "10400",
			},
			Note:        "Gift wrapping requested",
			Status:      order.StatusDelivered,
			Subtotal:    3600,
			ShippingFee: 50,
			Total:       3650,
			CreatedAt:   ts("2026-01-31T16:45:00Z"),
			UpdatedAt:   ts("2026-01-31T20:45:00Z"),
		},
		{
			ID:         "ORD-1005",
			CustomerID: "CUST005",
			Items: []order.OrderItem{
				{ProductID: "PROD005", ProductName: "USB-C Cable 2m", Quantity: 15, Price: 350},
			},
			ShippingAddress: order.ShippingAddress{
				Name:       "Charlie Davis",
				Phone:      "0845678901",
				Address:    "555 Shopping Mall, Siam Square",
				Province:   "Bangkok",
				PostalCode: "10330",
			},
			Status:      order.StatusPending,
			Subtotal:    5250,
			ShippingFee: 50,
			Total:       5300,
			CreatedAt:   ts("2026-02-01T08:00:00Z"),
			UpdatedAt:   ts("2026-02-01T08:00:00Z"),
		},
	}
}
