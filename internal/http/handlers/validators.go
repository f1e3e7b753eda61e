package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/markethub/admin-backend/internal/domain/workflow"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("workflow_status", func(fl validator.FieldLevel) bool {
			return workflow.ValidStatus(workflow.Status(fl.Field().String()))
		})
	}
}
