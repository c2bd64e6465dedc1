package main

import "github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/cmd"

func main() {
	cmd.Execute()
}
