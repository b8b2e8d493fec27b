package main

import "restaurant_site/cmd"

func main() {
	cmd.Execute()
}
