package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type ValidationError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context) {
	Write(c, http.StatusForbidden, "access_restricted", "Acesso restrito a administradores.")
}

// Validation writes field-level errors for form-style payloads.
func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Code:    "validation_failed",
		Message: "Verifique os campos destacados.",
		Fields:  fields,
	})
}

type mapping struct {
	status  int
	message string
}

var businessErrors = map[string]mapping{
	// 400
	"invalid_request":       {http.StatusBadRequest, "Dados inválidos."},
	"invalid_id":            {http.StatusBadRequest, "Identificador inválido."},
	"invalid_status":        {http.StatusBadRequest, "Status inválido."},
	"invalid_transition":    {http.StatusBadRequest, "Mudança de status não permitida."},
	"invalid_start_time":    {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_end_time":      {http.StatusBadRequest, "Horário de término inválido."},
	"invalid_time_range":    {http.StatusBadRequest, "O término deve ser posterior ao início."},
	"invalid_date":          {http.StatusBadRequest, "Data inválida."},
	"invalid_view":          {http.StatusBadRequest, "Visualização inválida."},
	"invalid_movement_type": {http.StatusBadRequest, "Tipo de movimentação inválido."},
	"invalid_quantity":      {http.StatusBadRequest, "Quantidade inválida."},
	"invalid_reason":        {http.StatusBadRequest, "Motivo inválido para o tipo de movimentação."},
	"insufficient_stock":    {http.StatusBadRequest, "Estoque insuficiente."},
	"invalid_weekday":       {http.StatusBadRequest, "Dia da semana inválido."},
	"invalid_working_hours": {http.StatusBadRequest, "Horário de trabalho inválido."},
	"invalid_timezone":      {http.StatusBadRequest, "Fuso horário inválido."},
	"invalid_category":      {http.StatusBadRequest, "Categoria inválida."},
	"invalid_amount":        {http.StatusBadRequest, "Valor inválido."},
	"invalid_role":          {http.StatusBadRequest, "Perfil inválido."},
	"invalid_commission":    {http.StatusBadRequest, "Comissão deve estar entre 0 e 100."},
	"invalid_image":         {http.StatusBadRequest, "Imagem inválida. Use JPEG, PNG ou WebP."},
	"image_too_large":       {http.StatusBadRequest, "Imagem maior que 5 MB."},
	"webhook_url_missing":   {http.StatusBadRequest, "Configure a URL do webhook."},
	"invalid_webhook_url":   {http.StatusBadRequest, "URL do webhook inválida."},
	"barber_inactive":       {http.StatusBadRequest, "Barbeiro inativo."},
	"service_inactive":      {http.StatusBadRequest, "Serviço inativo."},

	"cannot_deactivate_self": {http.StatusBadRequest, "Você não pode desativar a própria conta."},

	// 401 / 403
	"invalid_credentials": {http.StatusUnauthorized, "E-mail ou senha inválidos."},
	"account_inactive":    {http.StatusUnauthorized, "Conta desativada."},
	"access_restricted":   {http.StatusForbidden, "Acesso restrito a administradores."},

	// 404
	"not_found":              {http.StatusNotFound, "Registro não encontrado."},
	"organization_not_found": {http.StatusNotFound, "Barbearia não encontrada."},
	"appointment_not_found":  {http.StatusNotFound, "Agendamento não encontrado."},
	"client_not_found":       {http.StatusNotFound, "Cliente não encontrado."},
	"service_not_found":      {http.StatusNotFound, "Serviço não encontrado."},
	"product_not_found":      {http.StatusNotFound, "Produto não encontrado."},
	"profile_not_found":      {http.StatusNotFound, "Profissional não encontrado."},
	"barber_not_found":       {http.StatusNotFound, "Barbeiro não encontrado."},
	"expense_not_found":      {http.StatusNotFound, "Despesa não encontrada."},
	"integration_not_found":  {http.StatusNotFound, "Integração não configurada."},

	// 409
	"slug_already_exists":  {http.StatusConflict, "Este endereço já está em uso."},
	"email_already_exists": {http.StatusConflict, "Este e-mail já está cadastrado."},
	"conflict":             {http.StatusConflict, "Registro duplicado."},

	// 429 / 5xx
	"rate_limited":     {http.StatusTooManyRequests, "Muitas tentativas. Aguarde um momento."},
	"webhook_failed":   {http.StatusBadGateway, "Não foi possível contatar o webhook."},
	"uploads_disabled": {http.StatusServiceUnavailable, "Upload de imagens indisponível."},
}

// FromError writes the response for any error returned by a use case.
// Unknown errors become a fixed 500 and are attached to the gin context for logging.
func FromError(c *gin.Context, err error) {
	if code, ok := BusinessCode(err); ok {
		if m, found := businessErrors[code]; found {
			Write(c, m.status, code, m.message)
			return
		}
		BadRequest(c, code, "Operação não permitida.")
		return
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "not_found", businessErrors["not_found"].message)
		return
	case IsUniqueViolation(err):
		Write(c, http.StatusConflict, "conflict", businessErrors["conflict"].message)
		return
	case IsForeignKeyViolation(err):
		BadRequest(c, "invalid_reference", "Registro relacionado não encontrado.")
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "Não foi possível concluir a operação.")
}

// StatusFor reports the HTTP status FromError would use for a business code.
func StatusFor(code string) int {
	if m, ok := businessErrors[code]; ok {
		return m.status
	}
	return http.StatusBadRequest
}
