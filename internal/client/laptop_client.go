package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
	"github.com/rl1809/pcbook/internal/logger"
)

const (
	DefaultTimeout = 5 * time.Second
	chunkSize      = 1024
)

type LaptopClient struct {
	service pb.LaptopServiceClient
	timeout time.Duration
	log     *logger.Logger
}

func NewLaptopClient(cc grpc.ClientConnInterface, timeout time.Duration, log *logger.Logger) *LaptopClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LaptopClient{
		service: pb.NewLaptopServiceClient(cc),
		timeout: timeout,
		log:     log,
	}
}

// CreateLaptop returns the stored id. A laptop that already exists is not an
// error; its own id is returned.
func (c *LaptopClient) CreateLaptop(ctx context.Context, laptop *pb.Laptop) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.service.CreateLaptop(ctx, &pb.CreateLaptopRequest{Laptop: laptop})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			c.log.Info(c.log.WithLaptopID(ctx, laptop.GetId()), "laptop already exists")
			return laptop.GetId(), nil
		}
		return "", fmt.Errorf("create laptop: %w", err)
	}

	c.log.Info(c.log.WithLaptopID(ctx, resp.GetId()), "laptop created")
	return resp.GetId(), nil
}

func (c *LaptopClient) SearchLaptop(ctx context.Context, filter *pb.Filter, found func(*pb.Laptop)) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream, err := c.service.SearchLaptop(ctx, &pb.SearchLaptopRequest{Filter: filter})
	if err != nil {
		return fmt.Errorf("search laptop: %w", err)
	}

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("receive laptop: %w", err)
		}
		found(resp.GetLaptop())
	}
}

// UploadImage streams the file in fixed-size chunks. The image type is the
// file extension.
func (c *LaptopClient) UploadImage(ctx context.Context, laptopID, imagePath string) (*pb.UploadImageResponse, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream, err := c.service.UploadImage(ctx)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	err = stream.Send(&pb.UploadImageRequest{Info: &pb.ImageInfo{
		LaptopId:  laptopID,
		ImageType: filepath.Ext(imagePath),
	}})
	if err != nil {
		return nil, fmt.Errorf("send image info: %w", sendError(stream, err))
	}

	buffer := make([]byte, chunkSize)
	for {
		n, err := file.Read(buffer)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chunk: %w", err)
		}

		if err := stream.Send(&pb.UploadImageRequest{ChunkData: buffer[:n]}); err != nil {
			return nil, fmt.Errorf("send chunk: %w", sendError(stream, err))
		}
	}

	resp, err := stream.CloseAndRecv()
	if err != nil {
		return nil, fmt.Errorf("receive upload response: %w", err)
	}

	c.log.Info(c.log.WithFields(ctx, map[string]any{
		"image_id": resp.GetId(),
		"size":     resp.GetSize(),
	}), "image uploaded")
	return resp, nil
}

// sendError replaces io.EOF from Send with the status the server ended the
// stream with.
func sendError(stream grpc.ClientStreamingClient[pb.UploadImageRequest, pb.UploadImageResponse], err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	if _, recvErr := stream.CloseAndRecv(); recvErr != nil {
		return recvErr
	}
	return err
}

// RateLaptop sends every score on one stream while receiving the responses
// concurrently.
func (c *LaptopClient) RateLaptop(ctx context.Context, laptopIDs []string, scores []float64) ([]*pb.RateLaptopResponse, error) {
	if len(laptopIDs) != len(scores) {
		return nil, fmt.Errorf("rate laptop: %d ids for %d scores", len(laptopIDs), len(scores))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stream, err := c.service.RateLaptop(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate laptop: %w", err)
	}

	responses := make([]*pb.RateLaptopResponse, 0, len(laptopIDs))
	var g errgroup.Group

	g.Go(func() error {
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("receive rating: %w", err)
			}
			responses = append(responses, resp)
		}
	})

	g.Go(func() error {
		for i, laptopID := range laptopIDs {
			err := stream.Send(&pb.RateLaptopRequest{LaptopId: laptopID, Score: scores[i]})
			if errors.Is(err, io.EOF) {
				// Stream ended by the server; the receiver reports why.
				return nil
			}
			if err != nil {
				return fmt.Errorf("send rating: %w", err)
			}
		}
		return stream.CloseSend()
	})

	if err := g.Wait(); err != nil {
		return responses, err
	}
	return responses, nil
}
