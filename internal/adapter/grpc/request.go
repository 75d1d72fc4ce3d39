package grpc

import (
	"math"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/fintech-analyzer/internal/domain"
	"github.com/simaogato/fintech-analyzer/internal/usecase/market"
	"github.com/simaogato/fintech-analyzer/internal/usecase/portfolio"
)

// field returns the named request value, or nil when absent or null
func field(req *structpb.Struct, name string) *structpb.Value {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return v
}

func numberField(req *structpb.Struct, name string) (float64, bool, error) {
	v := field(req, name)
	if v == nil {
		return 0, false, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	if math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, false, status.Errorf(codes.InvalidArgument, "%s must be finite", name)
	}
	return n.NumberValue, true, nil
}

func intField(req *structpb.Struct, name string, def int) (int, error) {
	v, ok, err := numberField(req, name)
	if err != nil || !ok {
		return def, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(v), nil
}

func requiredNumber(req *structpb.Struct, name string) (float64, error) {
	v, ok, err := numberField(req, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return v, nil
}

func stringField(req *structpb.Struct, name, def string) (string, error) {
	v := field(req, name)
	if v == nil {
		return def, nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	return s.StringValue, nil
}

func requiredString(req *structpb.Struct, name string) (string, error) {
	s, err := stringField(req, name, "")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return s, nil
}

func periodField(req *structpb.Struct) (market.Period, error) {
	period, err := stringField(req, "period", string(market.Period24h))
	if err != nil {
		return "", err
	}
	switch p := market.Period(period); p {
	case market.Period24h, market.Period7d:
		return p, nil
	}
	return "", status.Errorf(codes.InvalidArgument, "period must be %q or %q", market.Period24h, market.Period7d)
}

func rangeFields(req *structpb.Struct) (float64, float64, error) {
	lo, err := requiredNumber(req, "min")
	if err != nil {
		return 0, 0, err
	}
	hi, err := requiredNumber(req, "max")
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func holdingInput(req *structpb.Struct) (portfolio.AddHoldingInput, error) {
	var input portfolio.AddHoldingInput

	assetType, err := requiredString(req, "type")
	if err != nil {
		return input, err
	}
	input.AssetType = domain.AssetType(strings.ToLower(assetType))

	if input.Name, err = requiredString(req, "name"); err != nil {
		return input, err
	}
	if input.Symbol, err = requiredString(req, "symbol"); err != nil {
		return input, err
	}
	if input.Quantity, err = requiredNumber(req, "quantity"); err != nil {
		return input, err
	}
	if input.PurchasePrice, err = requiredNumber(req, "purchase_price"); err != nil {
		return input, err
	}
	if input.CurrentPrice, err = requiredNumber(req, "current_price"); err != nil {
		return input, err
	}

	return input, nil
}
