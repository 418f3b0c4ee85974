package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("report_type", validateReportType)
	_ = v.RegisterValidation("report_category", validateReportCategory)
	return v
}

func validateReportType(fl validator.FieldLevel) bool {
	return models.ValidReportType(models.ReportType(fl.Field().String()))
}

func validateReportCategory(fl validator.FieldLevel) bool {
	return models.ValidReportCategory(models.ReportCategory(fl.Field().String()))
}
