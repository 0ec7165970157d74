package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("starting")
	os.Exit(1) // want "avoid using os.Exit in main.main"
}
