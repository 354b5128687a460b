package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"ratehub/external"
	"ratehub/internal/database"
	httpclient "ratehub/internal/http"
	"ratehub/internal/schema"
	env "ratehub/internal/secret"
	"ratehub/internal/utils"
)

// RateStreamingService fans one search out to every enabled leg source and
// streams the per-leg candidate lists back as they arrive. Mainline has two
// sources, the contracted rates in Oracle and the Oceanlink spot API, each
// emitted as its own chunk.
type RateStreamingService struct {
	ctx         context.Context
	done        <-chan int
	client      *httpclient.HttpClient
	env         *env.Manager
	vendors     *external.RateServiceFactory
	oracle      database.OracleRepository
	queryParams *schema.RateQueryParams
}

func NewRateStreamingService(
	ctx context.Context,
	done <-chan int,
	client *httpclient.HttpClient,
	env *env.Manager,
	vendors *external.RateServiceFactory,
	oracle database.OracleRepository,
	queryParams *schema.RateQueryParams,
) *RateStreamingService {
	return &RateStreamingService{
		ctx:         ctx,
		done:        done,
		client:      client,
		env:         env,
		vendors:     vendors,
		oracle:      oracle,
		queryParams: queryParams,
	}
}

// GenerateRateChannels spins one goroutine per enabled leg source.
func (rss *RateStreamingService) GenerateRateChannels() []<-chan any {
	fanOutChannels := make([]<-chan any, 0, 4)
	if rss.queryParams.Flags.Precarriage {
		fanOutChannels = append(fanOutChannels, rss.consolidate(rss.fetchPrecarriage))
	}
	if rss.queryParams.Flags.Mainline {
		fanOutChannels = append(fanOutChannels, rss.consolidate(rss.fetchContractMainline))
		fanOutChannels = append(fanOutChannels, rss.consolidate(rss.fetchSpotMainline))
	}
	if rss.queryParams.Flags.Oncarriage {
		fanOutChannels = append(fanOutChannels, rss.consolidate(rss.fetchOncarriage))
	}
	return fanOutChannels
}

func (rss *RateStreamingService) consolidate(fetch func() *schema.LegRates) <-chan any {
	stream := make(chan any)
	go func() {
		defer close(stream)
		select {
		case <-rss.done:
			return
		case <-rss.ctx.Done():
			return
		case stream <- fetch():
		}
	}()
	return stream
}

func (rss *RateStreamingService) fetchPrecarriage() *schema.LegRates {
	rates, err := rss.vendors.PrecarriageService().FetchRates(rss.ctx, rss.client, rss.env, rss.queryParams)
	if err != nil {
		log.Errorf("precarriage fetch failed: %s", err)
	}
	return &schema.LegRates{
		Leg:              schema.Precarriage,
		Source:           "transporex",
		PrecarriageRates: validRates(rates),
	}
}

func (rss *RateStreamingService) fetchContractMainline() *schema.LegRates {
	rates, err := rss.oracle.QueryContractRates(rss.ctx, *rss.queryParams)
	if err != nil {
		log.Errorf("contract rate query failed: %s", err)
	}
	return &schema.LegRates{
		Leg:           schema.Mainline,
		Source:        "contract",
		MainlineRates: rss.filterMainline(validRates(rates)),
	}
}

func (rss *RateStreamingService) fetchSpotMainline() *schema.LegRates {
	rates, err := rss.vendors.MainlineService().FetchRates(rss.ctx, rss.client, rss.env, rss.queryParams)
	if err != nil {
		log.Errorf("spot rate fetch failed: %s", err)
	}
	return &schema.LegRates{
		Leg:           schema.Mainline,
		Source:        "oceanlink",
		MainlineRates: rss.filterMainline(validRates(rates)),
	}
}

func (rss *RateStreamingService) fetchOncarriage() *schema.LegRates {
	rates, err := rss.vendors.OncarriageService().FetchRates(rss.ctx, rss.client, rss.env, rss.queryParams)
	if err != nil {
		log.Errorf("last mile fetch failed: %s", err)
	}
	return &schema.LegRates{
		Leg:             schema.Oncarriage,
		Source:          "draymate",
		OncarriageRates: validRates(rates),
	}
}

func (rss *RateStreamingService) filterMainline(rates []*schema.MainlineRate) []*schema.MainlineRate {
	compositeFilter := MainlineFilters(WithCarrier(), WithTransitType(), WithTransitPort(), WithinValidity(time.Now()))
	filtered := make([]*schema.MainlineRate, 0, len(rates))
	for _, rate := range rates {
		if compositeFilter(rate, rss.queryParams) {
			filtered = append(filtered, rate)
		}
	}
	return filtered
}

// validRates drops records the vendor returned malformed instead of failing
// the whole chunk.
func validRates[T any](rates []*T) []*T {
	valid := make([]*T, 0, len(rates))
	for _, rate := range rates {
		if err := schema.RateValidate.Struct(rate); err != nil {
			if validationErrors, ok := err.(validator.ValidationErrors); ok {
				log.Errorf("%+v\n", validationErrors.Error())
				continue
			}
		}
		valid = append(valid, rate)
	}
	return valid
}

// FanIn combines multiple leg channels into one
func (rss *RateStreamingService) FanIn(channels ...<-chan any) <-chan any {
	var wg sync.WaitGroup
	fannedInStream := make(chan any)

	transfer := func(ch <-chan any) {
		defer wg.Done()
		for i := range ch {
			select {
			case <-rss.done:
				return
			case <-rss.ctx.Done():
				return
			case fannedInStream <- i:
			}
		}
	}
	for _, c := range channels {
		wg.Add(1)
		go transfer(c)
	} //Spin a goroutine for each channel in order to process concurrently

	go func() {
		wg.Wait()
		close(fannedInStream)
	}() //Close waitgroup and channel

	return fannedInStream
}

// StreamResponse writes one NDJSON line per leg chunk as it lands.
func (rss *RateStreamingService) StreamResponse(w utils.FlushWriter, fannedIn <-chan any) {
	chunkCount := 0
	doneProcessing := make(chan int)

	go func() {
		defer close(doneProcessing)
		for chunk := range fannedIn {
			select {
			case <-rss.done:
				return
			case <-rss.ctx.Done():
				return
			default:
				legRates, _ := chunk.(*schema.LegRates)
				if legRates == nil {
					continue
				}
				chunkJSON, err := json.Marshal(legRates)
				if err != nil {
					log.Errorf("failed to encode leg chunk: %v", err)
					continue
				}
				_, _ = w.Write(chunkJSON)
				_, _ = w.Write([]byte("\n"))
				w.Flush()
				chunkCount++
			}
		}
	}()

	<-doneProcessing // Block until goroutine finishes
	if chunkCount == 0 {
		_, _ = w.Write([]byte(`{"message":"No available rates for the requested route."}` + "\n"))
		w.Flush()
	}
}
