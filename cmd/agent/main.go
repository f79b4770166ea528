package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"wifi-agent/internal/adapter/remote"
	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/application/usecase"
	"wifi-agent/internal/di"
	"wifi-agent/internal/infrastructure/env"
	"wifi-agent/internal/infrastructure/llm/openaicompat"
	"wifi-agent/internal/infrastructure/logger"
	"wifi-agent/internal/infrastructure/prompts"
)

func main() {
	envService := env.NewEnvService()

	var (
		serverURL string
		local     bool
		model     string
		baseURL   string
		apiKey    string
	)
	pflag.StringVar(&serverURL, "server", envService.GetWithDefault("WIFI_SERVER_URL", "http://localhost:8090"), "wifi-agent HTTP server to execute tools against")
	pflag.BoolVar(&local, "local", false, "run tools in-process instead of against a server")
	pflag.StringVar(&model, "model", envService.GetWithDefault("LLM_MODEL", "llama3.1"), "chat model name")
	pflag.StringVar(&baseURL, "base-url", envService.GetWithDefault("LLM_BASE_URL", "http://localhost:11434/v1"), "OpenAI-compatible API base URL")
	pflag.StringVar(&apiKey, "api-key", envService.GetWithDefault("LLM_API_KEY", "ollama"), "API key for the chat endpoint")
	pflag.Parse()

	task := strings.Join(pflag.Args(), " ")
	if strings.TrimSpace(task) == "" {
		fmt.Println("Ask a question about your Wi-Fi environment:")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input: %v\n", err)
			os.Exit(1)
		}
		task = strings.TrimSpace(line)
	}
	if task == "" {
		fmt.Fprintln(os.Stderr, "nothing to do")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	tools, log, cleanup, err := buildTools(ctx, local, serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	llmCfg := openaicompat.Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		Logger:  log,
	}
	llm := openaicompat.NewAdapter(llmCfg)

	executor := usecase.NewExecuteTaskUseCase(llm, tools, log, prompts.DefaultSystemPrompt)

	log.Info("task started", "task", task)
	result, err := executor.Execute(ctx, task)
	if err != nil {
		log.Error("task failed", "error", err)
		fmt.Fprintf(os.Stderr, "task failed: %v\n", err)
		os.Exit(1)
	}

	log.Info("task completed", "iterations", result.Iterations)
	fmt.Println(result.FinalAnswer)
}

func buildTools(ctx context.Context, local bool, serverURL string) (output.ToolRegistry, output.LoggerPort, func(), error) {
	if local {
		container, err := di.NewContainer(di.DefaultConfig())
		if err != nil {
			return nil, nil, nil, err
		}
		return container.Tools, container.Logger, container.Close, nil
	}

	log, err := logger.NewZapAdapter("info")
	if err != nil {
		return nil, nil, nil, err
	}

	registry, err := remote.NewRegistry(ctx, remote.NewClient(serverURL))
	if err != nil {
		log.Close()
		return nil, nil, nil, fmt.Errorf("connect to %s: %w", serverURL, err)
	}
	return registry, log, func() { log.Close() }, nil
}
