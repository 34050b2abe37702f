package domain

// LineItem — позиция корзины: товар и его количество.
// Внутри корзины уникальна по ProductID.
type LineItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Amount    int     `json:"amount"`
}

// Product — карточка товара из каталога.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// StockRecord — доступный остаток товара (read-only, не кэшируется).
type StockRecord struct {
	ProductID int64 `json:"id"`
	Amount    int   `json:"amount"`
}

// Cart — упорядоченный набор позиций; порядок вставки сохраняется для стабильного отображения.
type Cart []LineItem

// Summary — агрегаты корзины для отображения.
type Summary struct {
	Items int     `json:"items"`
	Total float64 `json:"total"`
}

// NewLineItem — новая позиция из карточки каталога с количеством 1.
// Идентификатор берётся запрошенный, а не из ответа каталога.
func NewLineItem(productID int64, p *Product) LineItem {
	return LineItem{
		ProductID: productID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Amount:    1,
	}
}

// Find — индекс позиции с productID или -1.
func (c Cart) Find(productID int64) int {
	for i := range c {
		if c[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone — независимая копия корзины (nil → пустая корзина).
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// WithAmount — копия корзины, в которой у позиции idx изменено количество.
func (c Cart) WithAmount(idx, amount int) Cart {
	out := c.Clone()
	out[idx].Amount = amount
	return out
}

// Append — копия корзины с новой позицией в конце.
func (c Cart) Append(item LineItem) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, item)
}

// Without — копия корзины без позиции idx.
func (c Cart) Without(idx int) Cart {
	out := make(Cart, 0, len(c))
	out = append(out, c[:idx]...)
	return append(out, c[idx+1:]...)
}

// Summary — количество единиц товара и итоговая сумма.
func (c Cart) Summary() Summary {
	var s Summary
	for _, item := range c {
		s.Items += item.Amount
		s.Total += item.Price * float64(item.Amount)
	}
	return s
}
