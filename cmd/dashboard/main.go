package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Architv27/Data-Dashboard/internal/alerts"
	"github.com/Architv27/Data-Dashboard/internal/analytics"
	"github.com/Architv27/Data-Dashboard/internal/catalog"
	"github.com/Architv27/Data-Dashboard/internal/config"
	"github.com/Architv27/Data-Dashboard/internal/logger"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	client := catalog.NewClient(cfg.Catalog.APIBaseURL, cfg.Catalog.Timeout)

	aggregator := analytics.CategoryAggregator{
		Threshold:  cfg.Analytics.OtherThreshold,
		OtherLabel: cfg.Analytics.OtherLabel,
	}

	var notifier *alerts.Notifier
	if cfg.Alerts.Enabled {
		notifier, err = alerts.NewNotifier(cfg.Alerts.BotToken, cfg.Alerts.ChatID, cfg.Alerts.MaxRetries, cfg.Alerts.RetryDelay)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram notifier: %v", err)
		}
		logger.Info("Telegram notifier initialized successfully")
	} else {
		logger.Debug("Telegram alerts disabled")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	logger.Info("Starting catalog refresh service (interval: %v, other_threshold: %.2f, low_stock_threshold: %d)",
		cfg.Catalog.PollInterval,
		cfg.Analytics.OtherThreshold,
		cfg.Alerts.LowStockThreshold,
	)

	ticker := time.NewTicker(cfg.Catalog.PollInterval)
	defer ticker.Stop()

	consecutiveFailures := 0

	handleCycleResult := func(err error) {
		if err != nil {
			consecutiveFailures++
			logger.Error("Refresh cycle failed: %v", err)
			if consecutiveFailures == 1 && notifier != nil {
				if sendErr := notifier.SendError(consecutiveFailures, err); sendErr != nil {
					logger.Warn("Failed to send error notification to Telegram: %v", sendErr)
				}
			}
		} else {
			if consecutiveFailures > 0 && notifier != nil {
				if sendErr := notifier.SendRecovery(); sendErr != nil {
					logger.Warn("Failed to send recovery notification to Telegram: %v", sendErr)
				}
			}
			consecutiveFailures = 0
		}
	}

	// Run initial refresh immediately
	logger.Debug("Running initial refresh cycle")
	handleCycleResult(runRefreshCycle(ctx, client, aggregator, notifier, cfg))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Service stopped")
			return

		case <-ticker.C:
			logger.Debug("Starting scheduled refresh cycle")
			handleCycleResult(runRefreshCycle(ctx, client, aggregator, notifier, cfg))
		}
	}
}

func runRefreshCycle(
	ctx context.Context,
	client *catalog.Client,
	aggregator analytics.CategoryAggregator,
	notifier *alerts.Notifier,
	cfg *config.Config,
) error {
	startTime := time.Now()
	logger.Info("Starting refresh cycle")

	summary, err := client.FetchSummary(ctx)
	if err != nil {
		return err
	}
	logger.Info("Summary fetched: %d products, %d categories",
		summary.TotalProducts, len(summary.CategoryStats))

	products, err := client.FetchProducts(ctx)
	if err != nil {
		return err
	}

	buckets := aggregator.Aggregate(products)
	for _, b := range buckets {
		logger.Debug("Category bucket %s: %d products (%.1f%%)", b.Key, b.Count, b.ShareOfTotal*100)
	}
	logger.Info("Aggregated %d products into %d category buckets", len(products), len(buckets))

	rows, err := client.FetchSentimentDistribution(ctx)
	if err != nil {
		return err
	}
	categories := analytics.RollUpCategories(rows)
	for _, c := range categories {
		if c.AverageRating != nil {
			logger.Debug("Sentiment %s: %d reviews, avg rating %.2f, %.1f%% positive",
				c.GroupKey, c.Total, *c.AverageRating, c.PositivePercentage)
		} else {
			logger.Debug("Sentiment %s: %d reviews, no rated reviews", c.GroupKey, c.Total)
		}
	}
	logger.Info("Rolled up %d sentiment rows into %d main categories", len(rows), len(categories))

	analysis, err := client.FetchPriceDiscountAnalysis(ctx)
	if err != nil {
		// The analysis endpoint degrades independently of the core
		// catalog; a missing section is not a cycle failure.
		var missing *catalog.MissingFieldError
		if errors.As(err, &missing) {
			logger.Warn("Price/discount analysis incomplete: %v", err)
		} else {
			return err
		}
	} else {
		report, reportErr := analytics.BuildPriceDiscountReport(analysis)
		if reportErr != nil {
			logger.Warn("Price/discount report unavailable: %v", reportErr)
		} else {
			logger.Info("Discounts: avg %.2f%%, median %.2f%%, price correlation %.2f",
				report.AverageDiscountPercentage, report.MedianDiscountPercentage, report.Correlation)
		}
	}

	lowStock := summary.LowStockProducts
	if len(lowStock) > 0 {
		logger.Warn("%d products below stock threshold", len(lowStock))
		if notifier != nil {
			if err := notifier.SendLowStock(lowStock, cfg.Alerts.LowStockThreshold); err != nil {
				logger.Error("Failed to send low-stock alert: %v", err)
			} else {
				logger.Info("Sent low-stock alert for %d products", len(lowStock))
			}
		}
	}

	logger.Info("Refresh cycle completed in %v", time.Since(startTime))
	return nil
}
