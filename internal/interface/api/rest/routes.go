package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// public
	RouteUpload      = RouteApiV1 + "/upload"
	RouteDownload    = RouteApiV1 + "/download/*key"
	RouteInformation = RouteApiV1 + "/information/*key"
	RouteConfig      = RouteApiV1 + "/config"

	// admin
	RouteAdmin       = RouteApiV1 + "/admin"
	RouteAdminFiles  = RouteAdmin + "/files"
	RouteAdminFile   = RouteAdminFiles + "/:file_id"
	RouteAdminConfig = RouteAdmin + "/config"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
