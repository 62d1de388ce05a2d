package main

import "github.com/inovacc/stargazer/cmd"

func main() {
	cmd.Execute()
}
