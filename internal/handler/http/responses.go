package http

import (
	"net/http"

	"github.com/mediamz/accounts/internal/utils"
	"github.com/mediamz/accounts/models"
)

// success writes the standard success envelope with the given payload and
// HTTP 200.
func (h *Handler) success(w http.ResponseWriter, resp any) {
	h.successStatus(w, resp, http.StatusOK)
}

// successStatus writes the standard success envelope with an explicit HTTP
// status code (e.g. 201 for resource creation).
func (h *Handler) successStatus(w http.ResponseWriter, resp any, statusCode int) {
	utils.WriteJSON(w, models.Response{
		Code: models.CodeSuccess,
		Msg:  "success",
		Resp: resp,
	}, statusCode)
}

// fail writes the failure envelope with the given message. The envelope
// code is derived from the HTTP status: 401 maps to the auth-failure code,
// everything else to the generic failure code.
func (h *Handler) fail(w http.ResponseWriter, statusCode int, msg string) {
	code := models.CodeFail
	if statusCode == http.StatusUnauthorized {
		code = models.CodeAuthFailed
	}

	utils.WriteJSON(w, models.Response{
		Code: code,
		Msg:  msg,
	}, statusCode)
}
