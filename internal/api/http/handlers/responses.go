package handlers

import (
	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
}

func productResponse(product *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            product.ID,
		IDType:        string(product.IDType),
		CategoryID:    product.CategoryID,
		Title:         product.Title,
		Slug:          product.Slug,
		Brand:         product.Brand,
		Manufacturer:  product.Manufacturer,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Quantity:      product.Quantity,
		Description:   product.Description,
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
		PublishedAt:   product.PublishedAt,
	}
}

func productListResponse(products []domain.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, productResponse(&products[i]))
	}
	return resp
}

func questionResponse(question *domain.ProductQuestion) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:        question.ID,
		ProductID: question.ProductID,
		UserID:    question.UserID,
		Question:  question.Question,
		Answer:    question.Answer,
		CreatedAt: question.CreatedAt,
	}
}

func categoryResponse(node *domain.CategoryNode) dto.CategoryResponse {
	children := make([]dto.CategoryResponse, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, categoryResponse(child))
	}
	return dto.CategoryResponse{
		ID:            node.ID,
		Title:         node.Title,
		SubCategories: children,
	}
}
