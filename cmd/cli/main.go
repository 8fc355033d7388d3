package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/lawtalk/backend/internal/config"
	"github.com/lawtalk/backend/internal/model/chat"
)

const (
	introLine   = `법률 관련 질문에 답변해 드립니다. 종료는 "q"를 입력하세요.`
	promptLine  = "질문을 입력해 주세요: "
	goodbyeLine = "프로그램을 종료합니다."
	quitCommand = "q"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type answerer interface {
	Answer(ctx context.Context, query string, history []chat.Exchange) (string, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	assistant, err := cfg.NewAssistant(ctx)
	if err != nil {
		log.Fatalf("failed to initialize agent: %v", err)
	}

	if err := run(ctx, os.Stdin, os.Stdout, assistant); err != nil {
		log.Fatalf("cli error: %v", err)
	}
}

// run reads questions line by line until "q" or EOF, keeping the exchanges
// of this process as history.
func run(ctx context.Context, in io.Reader, out io.Writer, assistant answerer) error {
	scanner := bufio.NewScanner(in)
	var history []chat.Exchange

	fmt.Fprintln(out, introLine)
	for {
		fmt.Fprint(out, promptLine)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, quitCommand) {
			fmt.Fprintln(out, goodbyeLine)
			return nil
		}

		answer, err := assistant.Answer(ctx, query, history)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("오류 발생: "+err.Error()))
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		history = append(history, chat.Exchange{Question: query, Answer: answer})
		fmt.Fprintln(out, labelStyle.Render("답변:"), answer)
	}
}
