package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/pkg"
)

// Caller identity headers. The API gateway in front of this service resolves
// the token and forwards the company and role as plain headers.
const (
	HeaderCompanyID = "X-Company-ID"
	HeaderRole      = "X-Role"
)

var errMissingCompany = pkg.NewDomainErrorSimple("MISSING_COMPANY", "X-Company-ID header is required", http.StatusUnauthorized)

// requireCompanyID extracts the caller's company or aborts with 401.
func requireCompanyID(c *gin.Context) (string, bool) {
	companyID := strings.TrimSpace(c.GetHeader(HeaderCompanyID))
	if companyID == "" {
		c.JSON(errMissingCompany.HTTPStatus, errMissingCompany.ToHTTPError())
		return "", false
	}
	return companyID, true
}

// callerRole reads the forwarded role header. An absent or unknown role comes
// back as the zero Role, which fails every permission predicate.
func callerRole(c *gin.Context) entities.Role {
	role := entities.Role(strings.TrimSpace(c.GetHeader(HeaderRole)))
	if !role.Known() {
		return entities.Role("")
	}
	return role
}
