package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/cli/config"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
	"github.com/secmon-lab/opsboard/pkg/repository/memory"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPredict() *cli.Command {
	var appCfg config.AppConfig
	var churnCfg config.Churn
	var seniorCitizen, partner, dependents string
	var contract, deviceProtection, internetService string

	defaults := model.DefaultCustomerProfile()
	profile := defaults

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, churnCfg.Flags()...)
	flags = append(flags,
		&cli.IntFlag{Name: "tenure", Usage: "Tenure in months (0-72)", Category: "Customer", Value: defaults.Tenure, Destination: &profile.Tenure},
		&cli.FloatFlag{Name: "monthly-charges", Usage: "Monthly charges (0-150)", Category: "Customer", Value: defaults.MonthlyCharges, Destination: &profile.MonthlyCharges},
		&cli.FloatFlag{Name: "total-charges", Usage: "Total charges (0-10000)", Category: "Customer", Value: defaults.TotalCharges, Destination: &profile.TotalCharges},
		&cli.StringFlag{Name: "senior-citizen", Usage: "Yes or No", Category: "Customer", Value: string(defaults.SeniorCitizen), Destination: &seniorCitizen},
		&cli.StringFlag{Name: "partner", Usage: "Yes or No", Category: "Customer", Value: string(defaults.Partner), Destination: &partner},
		&cli.StringFlag{Name: "dependents", Usage: "Yes or No", Category: "Customer", Value: string(defaults.Dependents), Destination: &dependents},
		&cli.StringFlag{Name: "contract", Usage: "Month-to-month, One year or Two year", Category: "Customer", Value: string(defaults.Contract), Destination: &contract},
		&cli.StringFlag{Name: "device-protection", Usage: "Yes, No or No internet service", Category: "Customer", Value: string(defaults.DeviceProtection), Destination: &deviceProtection},
		&cli.StringFlag{Name: "internet-service", Usage: "Fiber optic, DSL or No", Category: "Customer", Value: string(defaults.InternetService), Destination: &internetService},
	)

	return &cli.Command{
		Name:    "predict",
		Aliases: []string{"p"},
		Usage:   "Predict churn for one customer",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load app configuration")
			}

			if !churnCfg.IsConfigured() {
				return goerr.Wrap(usecase.ErrModelNotLoaded, "--churn-model is required")
			}
			svc, err := churnCfg.Configure(app)
			if err != nil {
				return err
			}

			profile.SeniorCitizen = types.YesNo(seniorCitizen)
			profile.Partner = types.YesNo(partner)
			profile.Dependents = types.YesNo(dependents)
			profile.Contract = types.Contract(contract)
			profile.DeviceProtection = types.DeviceProtection(deviceProtection)
			profile.InternetService = types.InternetService(internetService)

			uc := usecase.New(memory.New(), usecase.WithChurnService(svc))
			prediction, err := uc.Churn.Predict(ctx, &profile)
			if err != nil {
				return err
			}

			printPrediction(c.Root().Writer, prediction)
			return nil
		},
	}
}

func printPrediction(w io.Writer, p *model.ChurnPrediction) {
	c := okColor
	if p.Churn {
		c = alertColor
	}
	_, _ = c.Fprintln(w, p.Label)
	_, _ = fmt.Fprintf(w, "Churn probability: %.1f%% (%s risk)\n", p.Probability*100, p.Segment)
	_, _ = fmt.Fprintf(w, "Model: %s\n\n", p.ModelName)

	_, _ = headingColor.Fprintln(w, p.Headline)
	for _, r := range p.Recommendations {
		_, _ = fmt.Fprintf(w, "  * %s\n", r)
	}

	if len(p.TopFeatures) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = headingColor.Fprintln(w, "Top feature influences")
		for _, f := range p.TopFeatures {
			_, _ = fmt.Fprintf(w, "  %-36s %+.3f\n", f.Feature, f.Coefficient)
		}
	}
}
