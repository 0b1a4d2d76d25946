package votescot

// DO NOT EDIT!
// This code is generated with http://github.com/hexdigest/gowrap tool
// using opentelemetry.template template

//go:generate gowrap gen -p github.com/alexandre-normand/votescot -i Gateway -t opentelemetry.template -o gatewaymetrics.go

import (
	"context"
	"time"
	"unicode"

	"github.com/alexandre-normand/votescot/brain"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/api/metric"
)

// GatewayWithTelemetry implements Gateway interface with all methods wrapped
// with open telemetry metrics
type GatewayWithTelemetry struct {
	base                     Gateway
	methodCounters           map[string]metric.BoundInt64Counter
	errCounters              map[string]metric.BoundInt64Counter
	methodTimeValueRecorders map[string]metric.BoundInt64ValueRecorder
}

// NewGatewayWithTelemetry returns an instance of the Gateway decorated with open telemetry timing and count metrics
func NewGatewayWithTelemetry(base Gateway, name string, meter metric.Meter) GatewayWithTelemetry {
	return GatewayWithTelemetry{
		base:                     base,
		methodCounters:           newGatewayMethodCounters("Calls", name, meter),
		errCounters:              newGatewayMethodCounters("Errors", name, meter),
		methodTimeValueRecorders: newGatewayMethodTimeValueRecorders(name, meter),
	}
}

func newGatewayMethodTimeValueRecorders(appName string, meter metric.Meter) (boundTimeValueRecorders map[string]metric.BoundInt64ValueRecorder) {
	boundTimeValueRecorders = make(map[string]metric.BoundInt64ValueRecorder)
	mt := metric.Must(meter)

	nGetChannelsValRecorder := []rune("Gateway_GetChannels_ProcessingTimeMillis")
	nGetChannelsValRecorder[0] = unicode.ToLower(nGetChannelsValRecorder[0])
	mGetChannels := mt.NewInt64ValueRecorder(string(nGetChannelsValRecorder))
	boundTimeValueRecorders["GetChannels"] = mGetChannels.Bind(label.String("name", appName))

	nGetUsersValRecorder := []rune("Gateway_GetUsers_ProcessingTimeMillis")
	nGetUsersValRecorder[0] = unicode.ToLower(nGetUsersValRecorder[0])
	mGetUsers := mt.NewInt64ValueRecorder(string(nGetUsersValRecorder))
	boundTimeValueRecorders["GetUsers"] = mGetUsers.Bind(label.String("name", appName))

	nSayValRecorder := []rune("Gateway_Say_ProcessingTimeMillis")
	nSayValRecorder[0] = unicode.ToLower(nSayValRecorder[0])
	mSay := mt.NewInt64ValueRecorder(string(nSayValRecorder))
	boundTimeValueRecorders["Say"] = mSay.Bind(label.String("name", appName))

	return boundTimeValueRecorders
}

func newGatewayMethodCounters(suffix string, appName string, meter metric.Meter) (boundCounters map[string]metric.BoundInt64Counter) {
	boundCounters = make(map[string]metric.BoundInt64Counter)
	mt := metric.Must(meter)

	nGetChannelsCounter := []rune("Gateway_GetChannels_" + suffix)
	nGetChannelsCounter[0] = unicode.ToLower(nGetChannelsCounter[0])
	cGetChannels := mt.NewInt64Counter(string(nGetChannelsCounter))
	boundCounters["GetChannels"] = cGetChannels.Bind(label.String("name", appName))

	nGetUsersCounter := []rune("Gateway_GetUsers_" + suffix)
	nGetUsersCounter[0] = unicode.ToLower(nGetUsersCounter[0])
	cGetUsers := mt.NewInt64Counter(string(nGetUsersCounter))
	boundCounters["GetUsers"] = cGetUsers.Bind(label.String("name", appName))

	nSayCounter := []rune("Gateway_Say_" + suffix)
	nSayCounter[0] = unicode.ToLower(nSayCounter[0])
	cSay := mt.NewInt64Counter(string(nSayCounter))
	boundCounters["Say"] = cSay.Bind(label.String("name", appName))

	return boundCounters
}

// GetChannels implements Gateway
func (_d GatewayWithTelemetry) GetChannels(ctx context.Context) (channels []brain.Channel, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["GetChannels"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetChannels"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetChannels"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetChannels(ctx)
}

// GetUsers implements Gateway
func (_d GatewayWithTelemetry) GetUsers(ctx context.Context) (users []brain.User, err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["GetUsers"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["GetUsers"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["GetUsers"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.GetUsers(ctx)
}

// Say implements Gateway
func (_d GatewayWithTelemetry) Say(ctx context.Context, m Message) (err error) {
	_since := time.Now()
	defer func() {
		if err != nil {
			errCounter := _d.errCounters["Say"]
			errCounter.Add(context.Background(), 1)
		}

		methodCounter := _d.methodCounters["Say"]
		methodCounter.Add(context.Background(), 1)

		methodTimeMeasure := _d.methodTimeValueRecorders["Say"]
		methodTimeMeasure.Record(context.Background(), time.Since(_since).Milliseconds())
	}()
	return _d.base.Say(ctx, m)
}
