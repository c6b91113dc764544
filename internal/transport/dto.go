package transport

type RegisterRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password_2"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type AddToCartRequest struct {
	ArticleID string `json:"article_id"`
	Quantity  int    `json:"quantity"`
}

type CartLine struct {
	ArticleID string  `json:"article_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type CartView struct {
	CartID     string     `json:"cart_id,omitempty"`
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

type Receipt struct {
	Message       string  `json:"message"`
	TotalQuantity int     `json:"cantidad_articulos"`
	TotalPrice    float64 `json:"precio_total"`
}

type CreateArticleRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

type UpdateArticleRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
}

func (r UpdateArticleRequest) AnyFieldSet() bool {
	return r.Name != nil || r.Category != nil || r.Description != nil || r.Price != nil || r.Stock != nil
}

type AdvancedSearchRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}
