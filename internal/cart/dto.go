// AngelaMos | 2026
// dto.go

package cart

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=99"`
}

type CartItemResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

func ToCartResponse(items []CartItem) *CartResponse {
	resp := &CartResponse{Items: make([]CartItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		resp.Total += item.Price * float64(item.Quantity)
	}
	return resp
}
