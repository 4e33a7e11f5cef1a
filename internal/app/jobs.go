package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nexcat/catalog/internal/domain"
	"github.com/nexcat/catalog/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1m", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@hourly", func() {
		go a.SchedCatalogReportTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}
}

// SchedSystemMonitorTask samples host resource gauges
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if err := metrics.RecordSystemMetrics(); err != nil {
		zap.S().Warnf("system metrics sample failed: %v", err)
	}
}

// SchedCatalogReportTask logs catalog table sizes
func (a *Application) SchedCatalogReportTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	var products, categories int64
	a.gormDB.Model(&domain.Product{}).Count(&products)
	a.gormDB.Model(&domain.Category{}).Count(&categories)
	zap.L().Info("catalog report",
		zap.Int64("products", products),
		zap.Int64("categories", categories))
}
