package predictor_test

import (
	"errors"
	"io"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/fwi-predictor/internal/predictor"
)

type identityScaler struct {
	err  error
	seen []float64
}

func (s *identityScaler) Transform(row []float64) ([]float64, error) {
	s.seen = row
	if s.err != nil {
		return nil, s.err
	}
	return row, nil
}

type constRegressor struct {
	value float64
	err   error
	calls int
}

func (r *constRegressor) Predict(row []float64) (float64, error) {
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	return r.value, nil
}

func validInput() map[string]string {
	return map[string]string{
		"Temperature": "29",
		"RH":          "57",
		"WS":          "18",
		"Rain":        "0",
		"FFMC":        "65.7",
		"DMC":         "3.4",
		"ISI":         "1.3",
		"Classes":     "0",
		"Region":      "1",
	}
}

var _ = Describe("Predictor", func() {
	var (
		scaler    *identityScaler
		regressor *constRegressor
		p         *predictor.Predictor
	)

	BeforeEach(func() {
		scaler = &identityScaler{}
		regressor = &constRegressor{value: 3.14159}
		p = predictor.New(scaler, regressor, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("FieldNames", func() {
		It("should keep the training order", func() {
			Expect(predictor.FieldNames).To(Equal([]string{
				"Temperature", "RH", "WS", "Rain", "FFMC", "DMC", "ISI", "Classes", "Region",
			}))
			Expect(predictor.NumFeatures).To(Equal(9))
		})
	})

	Describe("Predict", func() {
		It("should round the regressor output to two decimals", func() {
			value, err := p.Predict(validInput())
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(3.14))
		})

		It("should build the vector in field order", func() {
			_, err := p.Predict(validInput())
			Expect(err).NotTo(HaveOccurred())
			Expect(scaler.seen).To(Equal([]float64{29, 57, 18, 0, 65.7, 3.4, 1.3, 0, 1}))
		})

		It("should return the same value for identical input", func() {
			first, err := p.Predict(validInput())
			Expect(err).NotTo(HaveOccurred())
			second, err := p.Predict(validInput())
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("should ignore surrounding whitespace", func() {
			in := validInput()
			in["Temperature"] = "  29 "
			_, err := p.Predict(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(scaler.seen[0]).To(Equal(29.0))
		})

		Context("with a missing field", func() {
			It("should name exactly the missing field", func() {
				for _, name := range predictor.FieldNames {
					in := validInput()
					delete(in, name)

					_, err := p.Predict(in)
					Expect(predictor.IsMissingFields(err)).To(BeTrue(), name)

					var ve *predictor.ValidationError
					Expect(errors.As(err, &ve)).To(BeTrue())
					Expect(ve.Missing).To(Equal([]string{name}))
				}
			})

			It("should treat whitespace as missing", func() {
				in := validInput()
				in["Rain"] = "   "
				_, err := p.Predict(in)
				Expect(err).To(MatchError(ContainSubstring("Rain")))
				Expect(predictor.OutcomeOf(err)).To(Equal(predictor.OutcomeMissingFields))
			})

			It("should list several missing fields in declaration order", func() {
				in := validInput()
				delete(in, "Region")
				delete(in, "RH")
				_, err := p.Predict(in)
				Expect(err).To(MatchError("Missing fields: RH, Region"))
			})

			It("should not call the model", func() {
				in := validInput()
				delete(in, "Rain")
				_, _ = p.Predict(in)
				Expect(regressor.calls).To(BeZero())
				Expect(scaler.seen).To(BeNil())
			})
		})

		Context("with a non-numeric field", func() {
			It("should return the generic error for any field", func() {
				for _, name := range predictor.FieldNames {
					in := validInput()
					in[name] = "abc"

					_, err := p.Predict(in)
					Expect(predictor.IsNonNumeric(err)).To(BeTrue(), name)
					Expect(err.Error()).NotTo(ContainSubstring(name))
				}
			})

			It("should report missing fields before parse failures", func() {
				in := validInput()
				in["WS"] = "x"
				delete(in, "ISI")
				_, err := p.Predict(in)
				Expect(predictor.IsMissingFields(err)).To(BeTrue())
			})
		})

		Context("when the scaler fails", func() {
			BeforeEach(func() {
				scaler.err = errors.New("shape mismatch")
			})

			It("should return a prediction error", func() {
				_, err := p.Predict(validInput())
				Expect(predictor.IsPredictionError(err)).To(BeTrue())
				Expect(predictor.IsMissingFields(err)).To(BeFalse())
				Expect(predictor.IsNonNumeric(err)).To(BeFalse())
				Expect(err).To(MatchError("Model prediction failed. shape mismatch"))
				Expect(predictor.OutcomeOf(err)).To(Equal(predictor.OutcomeTransformErr))
			})
		})

		Context("when the regressor fails", func() {
			BeforeEach(func() {
				regressor.err = errors.New("not fitted")
			})

			It("should return a prediction error", func() {
				_, err := p.Predict(validInput())
				Expect(err).To(MatchError(ContainSubstring("not fitted")))
				Expect(errors.Is(err, regressor.err)).To(BeTrue())
				Expect(predictor.OutcomeOf(err)).To(Equal(predictor.OutcomePredictErr))
			})
		})
	})

	Describe("BuildFeatureVector", func() {
		DescribeTable("accepted numbers",
			func(raw string, want float64) {
				in := validInput()
				in["DMC"] = raw
				row, err := predictor.BuildFeatureVector(in)
				Expect(err).NotTo(HaveOccurred())
				Expect(row[5]).To(Equal(want))
			},
			Entry("decimal", "3.4", 3.4),
			Entry("signed exponent", "-1.5e2", -150.0),
			Entry("digit separators", "1_000", 1000.0),
			Entry("separators in fraction", "1_0.2_5", 10.25),
		)

		DescribeTable("rejected numbers",
			func(raw string) {
				in := validInput()
				in["DMC"] = raw
				_, err := predictor.BuildFeatureVector(in)
				Expect(predictor.IsNonNumeric(err)).To(BeTrue())
			},
			Entry("hex float", "0x1p3"),
			Entry("signed hex", "-0X10"),
			Entry("leading underscore", "_1"),
			Entry("trailing underscore", "1_"),
			Entry("double underscore", "1__0"),
			Entry("underscore before point", "1_.5"),
			Entry("words", "twelve"),
		)

		It("should turn out-of-range values into infinity", func() {
			in := validInput()
			in["DMC"] = "1e400"
			in["ISI"] = "-1e400"
			row, err := predictor.BuildFeatureVector(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsInf(row[5], 1)).To(BeTrue())
			Expect(math.IsInf(row[6], -1)).To(BeTrue())
		})
	})

	Describe("Round2", func() {
		DescribeTable("rounding",
			func(in, want float64) {
				Expect(predictor.Round2(in)).To(Equal(want))
			},
			Entry("down", 3.14159, 3.14),
			Entry("up", 2.678, 2.68),
			Entry("negative", -1.005001, -1.01),
			Entry("integer", 7.0, 7.0),
		)
	})

	Describe("OutcomeOf", func() {
		It("should map nil to predicted", func() {
			Expect(predictor.OutcomeOf(nil)).To(Equal(predictor.OutcomePredicted))
		})
	})
})
