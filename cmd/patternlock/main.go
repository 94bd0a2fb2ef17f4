// Command patternlock validates, replays and interactively draws unlock
// patterns.
package main

func main() {
	Execute()
}
