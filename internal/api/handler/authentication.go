package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-manager-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-manager-api/pkg/log"
)

type LoginRequest struct {
	BusinessID string `json:"business_id"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Token    string           `json:"token"`
	Business *domain.Business `json:"business"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, business, err := service.Login(r.Context(), req.BusinessID, req.Password)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		business.PasswordHash = ""
		writeJSON(w, http.StatusOK, LoginResponse{
			Token:    token,
			Business: business,
		})
	}
}

// handleLoginError trata erros específicos de login e retorna a resposta apropriada
func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)

	case errors.Is(err, authenticating.ErrBusinessNotFound):
		apiErrors.WriteError(w, apiErrors.ErrBusinessNotFound, "Business não encontrado", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}

// GetMe retorna o tenant autenticado na requisição
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := tenantFromContext(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrMissingTenant, "Tenant não autenticado", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"business_id":   claims.BusinessID,
			"business_name": claims.BusinessName,
		})
	}
}

// ListBusinesses lista os tenants disponíveis para a tela de login
func ListBusinesses(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businesses, err := service.ListBusinesses(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar businesses")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar businesses", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"businesses": businesses,
		})
	}
}
