package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/sbezverk/sortbench"
	"github.com/sbezverk/sortbench/report"
)

var (
	listen string
)

func init() {
	flag.StringVar(&listen, "listen", ":50051", "address the chart collector listens on")
}

func main() {
	flag.Parse()
	_ = flag.Set("logtostderr", "true")

	c, err := report.NewCollector(listen)
	if err != nil {
		glog.Errorf("failed to start collector with error: %+v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Infof("collector listening on %s", c.Addr())

	stopCh := sortbench.SetupSignalHandler()
	console := report.NewConsole(os.Stdout)
	for {
		select {
		case f := <-c.GetFeed():
			if f.Err != nil {
				glog.Errorf("failed to receive chart from %v with error: %+v", f.ProducerAddr, f.Err)
				continue
			}
			glog.Infof("chart %s of run %s received from %v", f.Chart.Name, f.Chart.RunID, f.ProducerAddr)
			if err := console.Report(context.Background(), f.Chart); err != nil {
				glog.Errorf("failed to print chart %s with error: %+v", f.Chart.Name, err)
			}
		case <-stopCh:
			glog.Infof("stopping collector")
			c.Stop()
			glog.Flush()
			return
		}
	}
}
