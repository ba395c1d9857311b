// cmd/chromaview/main.go
package main

import (
	"chromaview/internal/app"
	"chromaview/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
