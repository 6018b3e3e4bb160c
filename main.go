package main

import "github.com/priyaank17/real-estate-ai-assistant/internal/cli"

func main() {
	cli.Execute()
}
