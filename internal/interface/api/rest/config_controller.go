package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/internal/infrastructure/jwt"
	cfgdto "file-drop-api/internal/interface/api/rest/dto/serviceconfig"
	"file-drop-api/internal/interface/api/rest/middleware"
)

type ConfigController struct {
	configService ports.ConfigService
	logger        *zap.Logger
}

func NewConfigController(
	r *gin.Engine,
	configService ports.ConfigService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *ConfigController {
	cc := &ConfigController{
		configService: configService,
		logger:        logger,
	}

	r.GET(RouteConfig, cc.GetConfigHandler)
	r.POST(RouteAdminConfig, middleware.AuthMiddleware(jwtService), cc.OnboardConfigHandler)
	r.PATCH(RouteAdminConfig, middleware.AuthMiddleware(jwtService), cc.UpdateConfigHandler)

	return cc
}

func (cc *ConfigController) GetConfigHandler(c *gin.Context) {
	cfg, err := cc.configService.Get(c.Request.Context())
	if err != nil {
		respondErr(c, cc.logger, "Get() config", err)
		return
	}

	c.JSON(http.StatusOK, cfgdto.ToResponse(*cfg))
}

func (cc *ConfigController) OnboardConfigHandler(c *gin.Context) {
	var req cfgdto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	cfg, err := cc.configService.Onboard(c.Request.Context(), cfgdto.ToDomain(req))
	if err != nil {
		respondErr(c, cc.logger, "Onboard() config", err)
		return
	}

	c.JSON(http.StatusCreated, cfgdto.ToResponse(*cfg))
}

func (cc *ConfigController) UpdateConfigHandler(c *gin.Context) {
	var req cfgdto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	cfg, err := cc.configService.Update(c.Request.Context(), cfgdto.ToDomain(req))
	if err != nil {
		respondErr(c, cc.logger, "Update() config", err)
		return
	}

	c.JSON(http.StatusOK, cfgdto.ToResponse(*cfg))
}
