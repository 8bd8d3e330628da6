package server

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// defaultNames is served when the names file is absent or unreadable.
var defaultNames = []string{"Michael", "Franklin", "Trevor", "CJ", "Tommy Vercetti"}

// handleNames serves the nickname suggestion list. The file is re-read on
// every request: newline delimited, blank lines and surrounding whitespace
// dropped.
func (s *Server) handleNames(c *gin.Context) {
	data, err := os.ReadFile(s.cfg.NamesFile)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read names file", "path", s.cfg.NamesFile, "error", err)
		}
		c.JSON(http.StatusOK, defaultNames)
		return
	}

	names := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		c.JSON(http.StatusOK, defaultNames)
		return
	}
	c.JSON(http.StatusOK, names)
}
