// Package docs provides generated OpenAPI documentation.
//
// Minutes API
//
//	@title			Minutes API
//	@version		1.0
//	@description	Turns meeting transcripts into structured minutes and rendered Word documents.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/minutes
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/minutes/serve.go -o ./swagger --parseDependency --parseInternal
