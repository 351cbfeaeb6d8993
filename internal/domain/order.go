package domain

const OrderStatusConfirmed = "confirmed"

// Order is an immutable record appended to the history at checkout.
type Order struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	Address       Address    `json:"address"`
	PaymentMethod string     `json:"paymentMethod"`
	Total         int64      `json:"total"`
	Status        string     `json:"status"`
	DeliveryDate  string     `json:"deliveryDate"`
	OrderDate     string     `json:"orderDate"`
}
