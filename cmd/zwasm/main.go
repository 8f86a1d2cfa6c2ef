// Command zwasm hosts zwasm guest modules outside the browser and renders
// the browser loader that runs them on a page.
package main

func main() {
	Execute()
}
