package handlers

import (
	"fmt"
	"net/http"

	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exportService *services.ExportService
	userService   *services.UserService
}

func NewExportHandler(exportService *services.ExportService, userService *services.UserService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		userService:   userService,
	}
}

// ExportBackers downloads the backer list of a project as a spreadsheet
func (h *ExportHandler) ExportBackers(c *gin.Context) {
	user, err := currentUser(c, h.userService)
	if err != nil {
		respondError(c, err)
		return
	}

	project, buf, err := h.exportService.ExportBackers(c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="backers-%s.xlsx"`, project.ID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
