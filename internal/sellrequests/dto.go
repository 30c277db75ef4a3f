package sellrequests

import (
	"time"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
)

// SellRequestDTO is the API shape of a sell-back request.
type SellRequestDTO struct {
	ReqID         string    `json:"req_id"`
	Email         string    `json:"email"`
	Device        string    `json:"device"`
	Brand         string    `json:"brand,omitempty"`
	Condition     string    `json:"condition"`
	ExpectedPrice string    `json:"expected_price"`
	Description   string    `json:"description,omitempty"`
	ImagePath     string    `json:"image_path,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ConversionDTO reports the outcome of turning a request into a listing.
type ConversionDTO struct {
	Request   SellRequestDTO `json:"request"`
	ProductID uint           `json:"product_id"`
}

func toSellRequestDTO(request *models.SellRequest) *SellRequestDTO {
	if request == nil {
		return nil
	}
	return &SellRequestDTO{
		ReqID:         request.ReqID,
		Email:         request.Email,
		Device:        request.Device,
		Brand:         request.Brand,
		Condition:     request.Condition.String(),
		ExpectedPrice: request.ExpectedPrice.StringFixed(2),
		Description:   request.Description,
		ImagePath:     request.ImagePath,
		Status:        request.Status.String(),
		CreatedAt:     request.CreatedAt,
	}
}

func toSellRequestDTOs(requests []models.SellRequest) []SellRequestDTO {
	dtos := make([]SellRequestDTO, 0, len(requests))
	for i := range requests {
		dtos = append(dtos, *toSellRequestDTO(&requests[i]))
	}
	return dtos
}
