package access

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// Guard is the single ownership predicate used by every vendor- and
// customer-scoped mutation. It resolves transitive ownership
// (connector -> pole -> station -> vendor) and returns the resolved entity
// so callers do not look it up twice.
type Guard struct {
	stations   ports.StationRepository
	poles      ports.PoleRepository
	connectors ports.ConnectorRepository
	priceRules ports.PriceRuleRepository
	vehicles   ports.VehicleRepository
	sessions   ports.SessionRepository
	log        *zap.Logger
}

func NewGuard(
	stations ports.StationRepository,
	poles ports.PoleRepository,
	connectors ports.ConnectorRepository,
	priceRules ports.PriceRuleRepository,
	vehicles ports.VehicleRepository,
	sessions ports.SessionRepository,
	log *zap.Logger,
) *Guard {
	return &Guard{
		stations:   stations,
		poles:      poles,
		connectors: connectors,
		priceRules: priceRules,
		vehicles:   vehicles,
		sessions:   sessions,
		log:        log,
	}
}

// VendorOwnsStation returns the station if it exists and belongs to the
// vendor.
func (g *Guard) VendorOwnsStation(ctx context.Context, stationID, vendorID string) (*domain.Station, error) {
	station, err := g.stations.FindByID(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find station: %w", err)
	}
	if station == nil {
		return nil, domain.NotFound("station %s not found", stationID)
	}
	if station.VendorID != vendorID {
		g.log.Warn("vendor ownership violation",
			zap.String("station_id", stationID),
			zap.String("vendor_id", vendorID),
		)
		return nil, domain.Forbidden("station %s is not owned by the caller", stationID)
	}
	return station, nil
}

// VendorOwnsPole resolves pole -> station -> vendor.
func (g *Guard) VendorOwnsPole(ctx context.Context, poleID, vendorID string) (*domain.Pole, error) {
	pole, err := g.poles.FindByID(ctx, poleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find pole: %w", err)
	}
	if pole == nil {
		return nil, domain.NotFound("pole %s not found", poleID)
	}
	if _, err := g.VendorOwnsStation(ctx, pole.StationID, vendorID); err != nil {
		return nil, err
	}
	return pole, nil
}

// VendorOwnsConnector resolves connector -> pole -> station -> vendor.
func (g *Guard) VendorOwnsConnector(ctx context.Context, connectorID, vendorID string) (*domain.Connector, error) {
	connector, err := g.connectors.FindByID(ctx, connectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find connector: %w", err)
	}
	if connector == nil {
		return nil, domain.NotFound("connector %s not found", connectorID)
	}
	if _, err := g.VendorOwnsPole(ctx, connector.PoleID, vendorID); err != nil {
		return nil, err
	}
	return connector, nil
}

// VendorOwnsPriceRule resolves rule -> pole -> station -> vendor.
func (g *Guard) VendorOwnsPriceRule(ctx context.Context, ruleID, vendorID string) (*domain.PriceRule, error) {
	rule, err := g.priceRules.FindByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find price rule: %w", err)
	}
	if rule == nil {
		return nil, domain.NotFound("price rule %s not found", ruleID)
	}
	if _, err := g.VendorOwnsPole(ctx, rule.PoleID, vendorID); err != nil {
		return nil, err
	}
	return rule, nil
}

// CustomerOwnsVehicle returns the vehicle if it belongs to the customer.
func (g *Guard) CustomerOwnsVehicle(ctx context.Context, vehicleID, customerID string) (*domain.Vehicle, error) {
	vehicle, err := g.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, domain.NotFound("vehicle %s not found", vehicleID)
	}
	if vehicle.CustomerID != customerID {
		return nil, domain.Forbidden("vehicle %s is not owned by the caller", vehicleID)
	}
	return vehicle, nil
}

// CustomerOwnsSession returns the session if it belongs to the customer.
func (g *Guard) CustomerOwnsSession(ctx context.Context, sessionID, customerID string) (*domain.ChargingSession, error) {
	session, err := g.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, domain.NotFound("session %s not found", sessionID)
	}
	if session.CustomerID != customerID {
		return nil, domain.Forbidden("session %s is not owned by the caller", sessionID)
	}
	return session, nil
}
