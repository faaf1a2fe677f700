package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/core/service"
	"github.com/rl1809/pcbook/internal/logger"
)

type GRPCHandler struct {
	pb.UnimplementedLaptopServiceServer
	laptopService *service.LaptopService
	log           *logger.Logger
}

func NewGRPCHandler(laptopService *service.LaptopService, log *logger.Logger) *GRPCHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &GRPCHandler{laptopService: laptopService, log: log}
}

func (h *GRPCHandler) CreateLaptop(ctx context.Context, req *pb.CreateLaptopRequest) (*pb.CreateLaptopResponse, error) {
	laptop := laptopFromPB(req.GetLaptop())
	id, err := h.laptopService.CreateLaptop(ctx, laptop)
	if err != nil {
		return nil, toStatus(err)
	}

	h.log.Info(h.log.WithLaptopID(ctx, id), "laptop created")
	return &pb.CreateLaptopResponse{Id: id}, nil
}

func (h *GRPCHandler) SearchLaptop(req *pb.SearchLaptopRequest, stream grpc.ServerStreamingServer[pb.SearchLaptopResponse]) error {
	ctx := stream.Context()
	filter := filterFromPB(req.GetFilter())

	err := h.laptopService.SearchLaptop(ctx, filter, func(laptop domain.Laptop) error {
		if err := stream.Send(&pb.SearchLaptopResponse{Laptop: LaptopToPB(laptop)}); err != nil {
			return fmt.Errorf("send laptop %s: %w", laptop.ID, err)
		}
		h.log.Debug(h.log.WithLaptopID(ctx, laptop.ID), "laptop found")
		return nil
	})
	if err != nil {
		return toStatus(err)
	}
	return nil
}

// UploadImage expects the image info first, then any number of chunks. The
// image is persisted only after the client closes its side of the stream.
func (h *GRPCHandler) UploadImage(stream grpc.ClientStreamingServer[pb.UploadImageRequest, pb.UploadImageResponse]) error {
	ctx := stream.Context()

	req, err := stream.Recv()
	if errors.Is(err, io.EOF) {
		return toStatus(domain.ErrMissingImageInfo)
	}
	if err != nil {
		return toStatus(fmt.Errorf("receive image info: %w", err))
	}
	info := req.GetInfo()
	if info == nil {
		return toStatus(domain.ErrMissingImageInfo)
	}

	session, err := h.laptopService.StartUpload(ctx, domain.ImageInfo{
		LaptopID:  info.LaptopId,
		ImageType: info.ImageType,
	})
	if err != nil {
		return toStatus(err)
	}
	ctx = h.log.WithLaptopID(ctx, info.LaptopId)

	for {
		if err := ctx.Err(); err != nil {
			return toStatus(err)
		}

		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return toStatus(fmt.Errorf("receive chunk: %w", err))
		}
		if req.GetInfo() != nil {
			return toStatus(fmt.Errorf("%w: image info sent twice", domain.ErrInvalidArgument))
		}
		if err := session.Write(req.GetChunkData()); err != nil {
			return toStatus(err)
		}
	}

	image, err := h.laptopService.FinishUpload(ctx, session)
	if err != nil {
		return toStatus(err)
	}

	h.log.Info(h.log.WithFields(ctx, map[string]any{
		"image_id": image.ID,
		"size":     image.Size,
	}), "image saved")

	return stream.SendAndClose(&pb.UploadImageResponse{
		Id:   image.ID,
		Size: uint32(image.Size),
	})
}

// RateLaptop answers every rating as soon as it is applied. The first failing
// rating ends the stream; ratings applied before it stay committed.
func (h *GRPCHandler) RateLaptop(stream grpc.BidiStreamingServer[pb.RateLaptopRequest, pb.RateLaptopResponse]) error {
	ctx := stream.Context()

	for {
		if err := ctx.Err(); err != nil {
			return toStatus(err)
		}

		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return toStatus(fmt.Errorf("receive rating: %w", err))
		}

		rating, err := h.laptopService.RateLaptop(ctx, domain.RatingEvent{
			LaptopID: req.GetLaptopId(),
			Score:    req.GetScore(),
		})
		if err != nil {
			return toStatus(err)
		}

		err = stream.Send(&pb.RateLaptopResponse{
			LaptopId:     req.GetLaptopId(),
			RatedCount:   rating.Count,
			AverageScore: rating.Average,
		})
		if err != nil {
			return toStatus(fmt.Errorf("send rating: %w", err))
		}
	}
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrImageTooLarge),
		errors.Is(err, domain.ErrMissingImageInfo):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	if s, ok := status.FromError(err); ok {
		return status.Error(s.Code(), err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
