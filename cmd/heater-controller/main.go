// Command heater-controller samples an analog temperature sensor and drives a
// heater and two status lamps with a hysteresis policy.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sweeney/heater-controller/internal/config"
	"github.com/sweeney/heater-controller/internal/control"
	"github.com/sweeney/heater-controller/internal/display"
	"github.com/sweeney/heater-controller/internal/gpio"
	"github.com/sweeney/heater-controller/internal/report"
	"github.com/sweeney/heater-controller/internal/sensor"
	"github.com/sweeney/heater-controller/internal/status"
)

type options struct {
	configPath string
	poll       time.Duration
	heartbeat  time.Duration
	iioPath    string
	adcBits    int
	chip       string
	pins       gpio.Pins
	printState bool
	tui        bool
	serial     bool
	logLevel   string
	logFile    string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML file overriding calibration and thresholds")
	flag.DurationVar(&o.poll, "poll", 100*time.Millisecond, "Control cycle period")
	flag.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat log interval (0 to disable)")
	flag.StringVar(&o.iioPath, "iio", sensor.DefaultIIOPath, "IIO raw attribute of the sensor ADC channel")
	flag.IntVar(&o.adcBits, "adc-bits", sensor.DefaultADCBits, "ADC resolution in bits")
	flag.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO chip carrying the output lines")
	flag.IntVar(&o.pins.Heater, "pin-heater", gpio.DefaultPinHeater, "Line offset for the heater")
	flag.IntVar(&o.pins.Ready, "pin-ready", gpio.DefaultPinReady, "Line offset for the ready lamp")
	flag.IntVar(&o.pins.Active, "pin-active", gpio.DefaultPinActive, "Line offset for the active lamp")
	flag.BoolVar(&o.printState, "print-state", false, "Run one cycle without driving outputs, print status JSON and exit")
	flag.BoolVar(&o.tui, "tui", false, "Show the live status panel")
	flag.BoolVar(&o.serial, "serial", true, "Write one status line per cycle to stdout (ignored with --tui)")
	flag.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&o.logFile, "log-file", "", "Append logs to this file instead of stderr")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	if err := o.validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(o.logLevel, o.logFile, o.tui)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	settings := cfg.Settings()

	// Initialize sensor
	reader, err := sensor.NewRealReader(o.iioPath, o.adcBits)
	if err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}
	defer reader.Close()

	// Print state mode
	if o.printState {
		return printState(reader, settings, os.Stdout, time.Now())
	}

	// Initialize outputs
	writer, err := gpio.NewRealWriter(o.chip, o.pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			log.WithError(err).Error("failed to release gpio")
		}
	}()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      o.poll.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		Settings:    settings,
	})

	reporters := report.Multi{report.NewLogReporter(nil)}
	if o.serial && !o.tui {
		reporters = append(reporters, report.NewLineReporter(os.Stdout))
	}

	log.WithFields(log.Fields{
		"poll":      o.poll,
		"heartbeat": o.heartbeat,
		"band_low":  float64(settings.Thresholds.Low),
		"band_high": float64(settings.Thresholds.High),
		"sensor":    o.iioPath,
		"chip":      o.chip,
	}).Info("started")

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if !o.tui {
		return runLoop(reader, writer, reporters, tracker, settings, o.heartbeat, time.Now, ticker.C, sigCh)
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- runLoop(reader, writer, reporters, tracker, settings, o.heartbeat, time.Now, ticker.C, sigCh)
	}()

	uiErr := display.Run(tracker, o.poll)
	// Leaving the panel stops the controller.
	sigCh <- os.Interrupt
	return errors.Join(uiErr, <-loopErr)
}

func (o options) validate() error {
	if o.poll <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", o.poll)
	}
	return nil
}

func runLoop(reader sensor.Reader, writer gpio.Writer, reporter report.Reporter, tracker *status.Tracker, settings control.Settings, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	thermostat := control.NewThermostat(settings, startTime)

	for {
		select {
		case s := <-sig:
			log.WithField("signal", s.String()).Info("shutting down")
			if err := writer.Write(control.Output{}); err != nil {
				log.WithError(err).Error("failed to switch outputs off")
			}
			return nil

		case <-tick:
			t := now()
			raw, err := reader.Read()
			if err != nil {
				log.WithError(err).Warn("sensor read error")
				continue
			}

			res := thermostat.Process(control.Input{Raw: raw, Time: t})

			if err := writer.Write(res.Output); err != nil {
				log.WithError(err).Error("output write error")
				// Keep cycling; the next write may succeed
			}

			for _, event := range res.Events {
				log.WithFields(log.Fields{
					"heater": event.Heater.String(),
					"sensor": event.Sensor.String(),
				}).Infof("event: %s", event.Type)
			}

			if err := reporter.Report(res.Record); err != nil {
				log.WithError(err).Warn("report error")
			}

			if tracker != nil {
				tracker.Update(t, res, thermostat.EventCountsSnapshot())
			}

			if hbData := thermostat.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.WithFields(log.Fields{
					"uptime":          hbData.Uptime,
					"heater":          thermostat.HeaterState().String(),
					"heater_on":       hbData.Counts.HeaterOn,
					"heater_off":      hbData.Counts.HeaterOff,
					"sensor_lost":     hbData.Counts.SensorLost,
					"sensor_restored": hbData.Counts.SensorRestored,
				}).Info("heartbeat")
			}
		}
	}
}

// printState runs a single cycle from a fresh thermostat and writes the
// resulting status JSON to w. Outputs are not driven.
func printState(reader sensor.Reader, settings control.Settings, w io.Writer, now time.Time) error {
	raw, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read sensor: %w", err)
	}

	thermostat := control.NewThermostat(settings, now)
	res := thermostat.Process(control.Input{Raw: raw, Time: now})

	tracker := status.NewTracker(now, status.Config{Settings: settings})
	tracker.Update(now, res, thermostat.EventCountsSnapshot())

	if _, err := fmt.Fprintf(w, "%s\n", status.FormatJSON(tracker.Snapshot())); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// setupLogging configures the standard logrus logger. With quiet set and no
// file, logs are discarded so they do not tear the live panel.
func setupLogging(level, file string, quiet bool) (func() error, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return f.Close, nil
	case quiet:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return func() error { return nil }, nil
}
