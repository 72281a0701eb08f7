// @title           Job Board API
// @version         1.0
// @description     API доски вакансий: вакансии, отклики, уведомления и журнал действий.
// @contact.name    Job Board
// @contact.email   support@jobboard.local
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "jobboard_backend/internal/app"

func main() {
	app.Run()
}
