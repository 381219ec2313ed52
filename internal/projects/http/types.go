package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/earthstream/projects-backend/internal/projects/domain"
)

type imagesReq struct {
	Background string   `json:"background"`
	Gallery    []string `json:"gallery"`
}

type locationReq struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type projectDataReq struct {
	Name            string      `json:"name" binding:"required"`
	Description     string      `json:"description" binding:"required"`
	GatewayType     string      `json:"gateway_type" binding:"required"`
	Images          imagesReq   `json:"images"`
	Location        locationReq `json:"location"`
	ProjectDiscord  string      `json:"project_discord"`
	PrivateDiscord  string      `json:"private_discord" binding:"required"`
	SensorsRequired int         `json:"sensors_required"`
	Video           string      `json:"video"`
	Tags            []string    `json:"tags"`
}

func (r *projectDataReq) toDomain() domain.ProjectData {
	return domain.ProjectData{
		Name:        r.Name,
		Description: r.Description,
		GatewayType: domain.GatewayType(r.GatewayType),
		Images: domain.ProjectImages{
			Background: r.Images.Background,
			Gallery:    r.Images.Gallery,
		},
		Location: domain.Location{
			Lat:     r.Location.Lat,
			Lng:     r.Location.Lng,
			Address: r.Location.Address,
		},
		ProjectDiscord:  r.ProjectDiscord,
		PrivateDiscord:  r.PrivateDiscord,
		SensorsRequired: r.SensorsRequired,
		Video:           r.Video,
		Tags:            r.Tags,
	}
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

type principalReq struct {
	Principal string `json:"principal" binding:"required"`
}

// pageParams reads optional pagination query parameters. Zero values mean
// "use the engine defaults" (page 1, size 20).
func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page"))
	size, _ = strconv.Atoi(c.Query("page_size"))
	return page, size
}
