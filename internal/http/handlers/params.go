package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// farmIDFrom prefers the body value and falls back to the farm_id query parameter.
func farmIDFrom(c *gin.Context, body string) (uuid.UUID, error) {
	raw := strings.TrimSpace(body)
	if raw == "" {
		raw = strings.TrimSpace(c.Query("farm_id"))
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("farm_id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid farm_id %q", raw)
	}
	return id, nil
}

func queryFloat(c *gin.Context, name string) (float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
