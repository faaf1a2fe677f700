package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/pcbook/internal/adapter/handler"
	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
	"github.com/rl1809/pcbook/internal/client"
	"github.com/rl1809/pcbook/internal/logger"
	"github.com/rl1809/pcbook/internal/sample"
)

type options struct {
	address  string
	timeout  time.Duration
	seed     uint64
	logLevel string
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "pcbook-client",
		Short:         "Talk to the laptop service",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.address, "address", envOr("PCBOOK_SERVER_ADDR", "localhost:8080"), "server address")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "per-call deadline")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", uint64(time.Now().UnixNano()), "random laptop seed")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level")

	root.AddCommand(
		newCreateCommand(opts),
		newSearchCommand(opts),
		newUploadCommand(opts),
		newRateCommand(opts),
	)
	return root
}

// connect dials the server and hands a client to run.
func connect(opts *options, run func(*client.LaptopClient, *sample.Generator) error) error {
	conn, err := grpc.NewClient(opts.address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", opts.address, err)
	}
	defer conn.Close()

	log := logger.New(logger.Options{
		ServiceName: "pcbook-client",
		Level:       logger.ParseLevel(opts.logLevel),
		Format:      logger.FormatConsole,
		Output:      os.Stderr,
	})
	return run(client.NewLaptopClient(conn, opts.timeout, log), sample.NewGenerator(opts.seed))
}

func newCreateCommand(opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create random laptops",
		RunE: func(cmd *cobra.Command, args []string) error {
			return connect(opts, func(c *client.LaptopClient, g *sample.Generator) error {
				for i := 0; i < count; i++ {
					id, err := c.CreateLaptop(cmd.Context(), toWire(g))
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of laptops")
	return cmd
}

func newSearchCommand(opts *options) *cobra.Command {
	var (
		seedCount int
		filter    pb.Filter
		minRAMGB  uint64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search laptops by price, CPU and memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minRAMGB > 0 {
				filter.MinRam = &pb.Memory{Value: minRAMGB, Unit: pb.Memory_GIGABYTE}
			}
			return connect(opts, func(c *client.LaptopClient, g *sample.Generator) error {
				for i := 0; i < seedCount; i++ {
					if _, err := c.CreateLaptop(cmd.Context(), toWire(g)); err != nil {
						return err
					}
				}
				return c.SearchLaptop(cmd.Context(), &filter, func(laptop *pb.Laptop) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s\tcores=%d ghz=%.2f ram=%d %s price=%.2f\n",
						laptop.GetId(), laptop.Brand, laptop.Name,
						laptop.GetCpu().GetNumberCores(), laptop.GetCpu().GetMinGhz(),
						laptop.GetRam().GetValue(), laptop.GetRam().GetUnit(), laptop.PriceUsd)
				})
			})
		},
	}
	cmd.Flags().IntVar(&seedCount, "seed-laptops", 0, "random laptops to create before searching")
	cmd.Flags().Float64Var(&filter.MaxPriceUsd, "max-price", 0, "maximum price in USD")
	cmd.Flags().Uint32Var(&filter.MinCpuCores, "min-cores", 0, "minimum CPU cores")
	cmd.Flags().Float64Var(&filter.MinCpuGhz, "min-ghz", 0, "minimum CPU frequency")
	cmd.Flags().Uint64Var(&minRAMGB, "min-ram-gb", 0, "minimum RAM in gigabytes")
	return cmd
}

func newUploadCommand(opts *options) *cobra.Command {
	var laptopID, imagePath string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a laptop image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return connect(opts, func(c *client.LaptopClient, g *sample.Generator) error {
				id := laptopID
				if id == "" {
					created, err := c.CreateLaptop(cmd.Context(), toWire(g))
					if err != nil {
						return err
					}
					id = created
				}
				resp, err := c.UploadImage(cmd.Context(), id, imagePath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d bytes\n", resp.GetId(), resp.GetSize())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&laptopID, "laptop-id", "", "target laptop (a random one is created when empty)")
	cmd.Flags().StringVar(&imagePath, "image", "", "image file")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newRateCommand(opts *options) *cobra.Command {
	var laptops, rounds int

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Create laptops and rate them with random scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			return connect(opts, func(c *client.LaptopClient, g *sample.Generator) error {
				ids := make([]string, 0, laptops)
				for i := 0; i < laptops; i++ {
					id, err := c.CreateLaptop(cmd.Context(), toWire(g))
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}

				for round := 0; round < rounds; round++ {
					scores := make([]float64, len(ids))
					for i := range scores {
						scores[i] = g.NewScore()
					}
					responses, err := c.RateLaptop(cmd.Context(), ids, scores)
					if err != nil {
						return err
					}
					for _, resp := range responses {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\tcount=%d average=%.2f\n",
							resp.GetLaptopId(), resp.GetRatedCount(), resp.GetAverageScore())
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&laptops, "laptops", 3, "laptops to create and rate")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "rating rounds")
	return cmd
}

func toWire(g *sample.Generator) *pb.Laptop {
	return handler.LaptopToPB(g.NewLaptop())
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
