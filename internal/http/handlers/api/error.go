package api

import (
	"errors"

	handlershared "github.com/littlelemon-next/internal/http/handlers/shared"
	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var orderUpdateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrNotDeliveryCrew, code: response.CodeBadRequest, key: "error.not_delivery_crew"},
	{target: service.ErrNotAssignedCrew, code: response.CodeForbidden, key: "error.not_assigned_crew"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var menuItemWriteErrorRules = []mappedHandlerError{
	{target: service.ErrMenuItemNotAvailable, code: response.CodeBadRequest, key: "error.menu_item_unavailable"},
	{target: service.ErrInvalidPrice, code: response.CodeBadRequest, key: "error.price_invalid"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, key: "error.category_not_found"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.menu_item_not_found"},
}

func respondOrderUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderUpdateErrorRules, response.CodeInternal, "error.order_update_failed")
}

func respondMenuItemWriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, menuItemWriteErrorRules, response.CodeInternal, "error.menu_item_save_failed")
}
