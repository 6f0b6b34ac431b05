/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/blood-heros/apiserver/config"
	"github.com/blood-heros/apiserver/internal/logger"
	"github.com/blood-heros/apiserver/internal/mq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// notifyCmd represents the notify command
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Consume donation events from the message queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if queue == nil {
			return errors.New("MQ_BACKEND is not configured")
		}
		defer queue.Close()

		log.WithField("channel", cfg.MQ.Channel).Info("waiting for donation events")
		events := mq.NewEventPublisher(queue, cfg.MQ.Channel)
		err = events.SubscribeDonationEvents(ctx, logDonationEvent(log))
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func logDonationEvent(log logrus.FieldLogger) func(context.Context, mq.DonationEvent) error {
	return func(_ context.Context, event mq.DonationEvent) error {
		log.WithFields(logrus.Fields{
			"event":       event.Type,
			"donation_id": event.DonationID,
			"status":      event.Status,
			"blood_group": event.BloodGroup,
			"district":    event.District,
			"upazila":     event.Upazila,
			"donor_email": event.DonorEmail,
		}).Info("donation event")
		return nil
	}
}
