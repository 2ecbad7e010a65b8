// cmd/inprot/main.go
package main

import (
	"inprot/internal/app"
	"inprot/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
