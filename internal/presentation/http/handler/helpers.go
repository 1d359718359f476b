package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
)

// requireUser writes a 401 and returns false when the request is anonymous
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
	}
	return userID, ok
}

// pathID parses a UUID path parameter, writing a 400 on failure
func pathID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, writing 422 for validation failures
// and 400 for malformed bodies
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields := request.FieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// bindQuery binds query parameters, writing 422 for validation failures
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if fields := request.FieldErrors(err); fields != nil {
			response.ValidationError(c, fields)
			return false
		}
		response.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

func pageParams(page, perPage int) *pagination.Params {
	return pagination.New(page, perPage)
}

func optionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
