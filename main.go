package main

import "github.com/crewsight/vocalis/cmd"

func main() {
	cmd.Execute()
}
