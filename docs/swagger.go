package docs

import "github.com/swaggo/swag"

// @title           Pedalboard API
// @version         1.0
// @description     API for composing and sharing pedalboard layouts: reusable pedal/board assets, spatial scenes, likes and suggestions.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profile

// @tag.name Pedals
// @tag.description Pedal asset library operations

// @tag.name Boards
// @tag.description Board asset library operations

// @tag.name Pedalboards
// @tag.description Scene composition, likes, cloning and suggestions

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
