package main

import "github.com/DayriseA/OCP12-CRM-EpicEvents/cmd"

func main() {
	cmd.Execute()
}
