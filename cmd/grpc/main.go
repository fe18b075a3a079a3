package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/threading"

	"token-decoder-sol/internal/config"
	"token-decoder-sol/internal/logic/grpc"
	"token-decoder-sol/internal/svc"
	"token-decoder-sol/pkg/logger"
)

var configFile = flag.String("f", "etc/grpc.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	var c config.GrpcConfig
	conf.MustLoad(*configFile, &c)

	logger.Init(c.LogConf.ToLogOption())
	defer logger.Sync()

	serviceContext, err := svc.NewGrpcServiceContext(c)
	if err != nil {
		logx.Errorf("init service context failed: %v", err)
		os.Exit(1)
	}
	defer serviceContext.Close()

	blockChan := make(chan *pb.SubscribeUpdateBlock, c.DecodeConf.BlockChanSize)

	sg := zerosvc.NewServiceGroup()
	sg.Add(grpc.NewBlockProcessor(serviceContext, blockChan))

	grpcService, err := grpc.NewGrpcStreamManager(serviceContext, blockChan)
	if err != nil {
		logx.Errorf("init grpc stream failed: %v", err)
		os.Exit(1)
	}
	sg.Add(grpcService)

	logx.Infof("Starting token decoder, endpoint=%s, programs=%v", c.Grpc.Endpoint, serviceContext.Parser.ProgramIDs())

	// BlockProcessor.Start 会阻塞，ServiceGroup 在后台启动
	threading.GoSafe(sg.Start)

	// 等待退出信号
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logx.Info("Shutting down services...")
	sg.Stop()
}
