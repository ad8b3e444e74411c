// File: cmd/demo/main.go
//
// Offline console demo of the rule engine. No database, no redis: the
// dialogue context lives in memory for the lifetime of the process.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/engine"
	"mindwell-companion/internal/infra/crisis"
)

func main() {
	lib, err := engine.DefaultLibrary()
	if err != nil {
		log.Fatalf("template library: %v", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	eng := engine.NewEngine(lib, crisis.Static("If you are in immediate danger, please contact your local emergency services."), &logger)

	sc := model.NewSessionContext()
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Companion demo. Type a message, or /quit to exit.")
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		res := eng.ProcessTurn(line, sc)
		sc = res.Context

		fmt.Printf("[%s | %s | %s]\n", res.Topic, res.Emotion, res.Sentiment)
		fmt.Println(res.Response)
		if len(res.Suggestions) > 0 {
			fmt.Printf("  suggestions: %s\n", strings.Join(res.Suggestions, " / "))
		}
	}
}
