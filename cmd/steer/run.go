package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/steer/internal/inference"
	"github.com/samcharles93/steer/internal/toy"
)

func runCmd() *cli.Command {
	var (
		prompt       string
		promptTokens string
		maxTokens    int64
		stopList     string
		eosList      string
		repPenalty   float64
		noRepeat     int64
		forced       string
		seed         int64
		echoPrompt   bool
		showTokens   bool

		// Profiling
		cpuProfile string
		memProfile string
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run generation against the built-in model",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "prompt",
				Aliases:     []string{"p"},
				Usage:       "prompt text (omit for interactive mode)",
				Destination: &prompt,
			},
			&cli.StringFlag{
				Name:        "prompt-tokens",
				Usage:       "comma-separated prompt token ids (skips encoding)",
				Destination: &promptTokens,
			},
			&cli.Int64Flag{
				Name:        "max-tokens",
				Aliases:     []string{"n"},
				Usage:       "maximum number of tokens to generate",
				Value:       64,
				Destination: &maxTokens,
			},
			&cli.StringFlag{
				Name:        "stop",
				Usage:       "comma-separated stop strings",
				Destination: &stopList,
			},
			&cli.StringFlag{
				Name:        "eos",
				Usage:       "comma-separated token ids that end generation",
				Destination: &eosList,
			},
			&cli.Float64Flag{
				Name:        "repetition-penalty",
				Usage:       "repetition penalty (1.0 = disabled)",
				Value:       1.0,
				Destination: &repPenalty,
			},
			&cli.Int64Flag{
				Name:        "no-repeat-ngram",
				Usage:       "ban repeating n-grams of this size (0 = disabled)",
				Destination: &noRepeat,
			},
			&cli.StringFlag{
				Name:        "force",
				Usage:       "comma-separated step:id pairs forcing a token at a step",
				Destination: &forced,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "model seed",
				Destination: &seed,
			},
			&cli.BoolFlag{
				Name:        "echo-prompt",
				Usage:       "stream the prompt text before generation",
				Destination: &echoPrompt,
			},
			&cli.BoolFlag{
				Name:        "show-tokens",
				Usage:       "print prompt token ids",
				Destination: &showTokens,
			},
			// Profiling flags
			&cli.StringFlag{
				Name:        "cpuprofile",
				Usage:       "write cpu profile to file",
				Destination: &cpuProfile,
			},
			&cli.StringFlag{
				Name:        "memprofile",
				Usage:       "write memory profile to file",
				Destination: &memProfile,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return cli.Exit(fmt.Sprintf("could not create CPU profile: %v", err), 1)
				}
				defer func() { _ = f.Close() }()
				if err := pprof.StartCPUProfile(f); err != nil {
					return cli.Exit(fmt.Sprintf("could not start CPU profile: %v", err), 1)
				}
				defer pprof.StopCPUProfile()
			}

			if memProfile != "" {
				defer func() {
					f, err := os.Create(memProfile)
					if err != nil {
						fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
						return
					}
					defer func() { _ = f.Close() }()
					if err := pprof.WriteHeapProfile(f); err != nil {
						fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
					}
				}()
			}

			cfg := LoadConfig()
			applyLoggingConfig(c, cfg)
			applyRunConfig(c, cfg, &seed)
			log := newLogger()

			opts := inference.RequestOptions{}
			if prompt != "" {
				opts.Prompt = &prompt
			}
			if promptTokens != "" {
				ids, err := parseTokenList(promptTokens)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: parse --prompt-tokens: %v", err), 1)
				}
				opts.PromptTokens = ids
			}
			if c.IsSet("max-tokens") {
				mt := int(maxTokens)
				opts.MaxTokens = &mt
			}
			if c.IsSet("repetition-penalty") {
				opts.RepetitionPenalty = &repPenalty
			}
			if c.IsSet("no-repeat-ngram") {
				n := int(noRepeat)
				opts.NoRepeatNgram = &n
			}
			if forced != "" {
				ft, err := parseForcedTokens(forced)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: parse --force: %v", err), 1)
				}
				opts.Forced = ft
			}
			if c.IsSet("eos") {
				ids, err := parseTokenList(eosList)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: parse --eos: %v", err), 1)
				}
				opts.EOSTokens = ids
			}
			if c.IsSet("stop") {
				opts.StopSequences = parseStopList(stopList)
			}
			opts.EchoPrompt = &echoPrompt

			defaults := cfg.genDefaults()
			if defaults.EOSTokens == nil {
				defaults.EOSTokens = []int{toy.EOSID()}
			}

			codec := toy.NewCodec()
			engine := inference.NewLocalEngine(toy.NewModel(seed), codec)
			defer func() { _ = engine.Close() }()
			log.Debug("engine ready", "seed", seed)

			if prompt != "" || len(opts.PromptTokens) > 0 {
				req := inference.ResolveRequest(opts, defaults)
				if showTokens {
					printInputTokens(codec, &req)
				}
				if err := generateOnce(ctx, engine, &req); err != nil {
					return cli.Exit(fmt.Sprintf("error: generation: %v", err), 1)
				}
				return nil
			}

			// Interactive mode: each line is an independent prompt, so the
			// echo flag would only repeat what the user just typed.
			echoOff := false
			opts.EchoPrompt = &echoOff

			fmt.Fprintln(os.Stderr, "Interactive mode. Type /exit to quit.")
			ed := newLineEditor()
			for ctx.Err() == nil {
				line, err := ed.ReadLine("> ")
				if err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return cli.Exit(fmt.Sprintf("error: read input: %v", err), 1)
				}
				input := strings.TrimSpace(line)
				if input == "" {
					continue
				}
				if input == "/exit" {
					break
				}

				lineOpts := opts
				lineOpts.Prompt = &input
				req := inference.ResolveRequest(lineOpts, defaults)
				if showTokens {
					printInputTokens(codec, &req)
				}
				if err := generateOnce(ctx, engine, &req); err != nil {
					fmt.Fprintln(os.Stderr, "error: generation:", err)
					break
				}
			}
			return nil
		},
	}
}

// generateOnce streams one generation to stdout and prints its stats line.
// A cancelled generation is reported through the stats line, not as an
// error.
func generateOnce(ctx context.Context, engine inference.Engine, req *inference.Request) error {
	res, err := engine.Generate(ctx, req, func(s string) {
		fmt.Print(s)
	})
	if res != nil {
		fmt.Println()
		fmt.Fprintf(os.Stderr, "Stats: %.2f TPS (%d tokens in %s) finish=%s\n",
			res.Stats.TPS, res.Stats.TokensGenerated, res.Stats.Duration, res.FinishReason)
		if res.FinishReason == inference.FinishCancelled {
			return nil
		}
	}
	return err
}

func printInputTokens(codec inference.Codec, req *inference.Request) {
	ids := req.PromptTokens
	if len(ids) == 0 && req.Prompt != "" {
		encoded, err := codec.Encode(req.Prompt)
		if err != nil {
			return
		}
		ids = encoded
	}
	fmt.Fprintf(os.Stderr, "Input tokens (%d): %s\n", len(ids), joinInts(ids))
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte(']')
	return b.String()
}
