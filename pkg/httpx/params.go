package httpx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrBadParam — параметр пути отсутствует или не является положительным целым.
var ErrBadParam = errors.New("bad path parameter")

// ParseProductID — читает положительный int64 из параметра пути name.
func ParseProductID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrBadParam, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadParam, name, raw)
	}
	return id, nil
}
