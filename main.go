package main

import "github.com/NextGenXplorer/NutriGuide/cmd/nutriguide"

func main() {
	nutriguide.Execute()
}
