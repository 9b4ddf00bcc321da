package charge

const (
	// ReferencePrefix 注文IDから参照を組み立てる際のプレフィックス
	ReferencePrefix = "ORDER-"
	// DefaultCurrency 通貨未指定時のデフォルト
	DefaultCurrency = "USD"
	// DefaultCustomerEmail 顧客メール未指定時のプレースホルダー
	DefaultCustomerEmail = "cliente@correo.com"
	// ChannelQR QRコード表示での決済チャネル
	ChannelQR = "QR"
)

// Charge チャージエンティティ
type Charge struct {
	orderID       string
	amount        float64
	currency      string
	customerEmail string
}

// NewCharge 新しいChargeエンティティを作成
func NewCharge(orderID string, amount float64, currency, customerEmail string) (*Charge, error) {
	if orderID == "" || amount == 0 {
		return nil, ErrMissingFields
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if customerEmail == "" {
		customerEmail = DefaultCustomerEmail
	}
	return &Charge{
		orderID:       orderID,
		amount:        amount,
		currency:      currency,
		customerEmail: customerEmail,
	}, nil
}

// OrderID 注文IDを返す
func (c *Charge) OrderID() string {
	return c.orderID
}

// Amount 金額を返す
func (c *Charge) Amount() float64 {
	return c.amount
}

// Currency 通貨を返す
func (c *Charge) Currency() string {
	return c.currency
}

// CustomerEmail 顧客メールアドレスを返す
func (c *Charge) CustomerEmail() string {
	return c.customerEmail
}

// Reference 注文IDから決済プロバイダーへ渡す参照を返す
func (c *Charge) Reference() string {
	return ReferencePrefix + c.orderID
}
