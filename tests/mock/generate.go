package mock

//go:generate mockgen -source=../../internal/usecase/saga/coordinator.go -destination=saga/booking_saga.go -package=sagamock
//go:generate mockgen -source=../../internal/usecase/saga/reconciler.go -destination=saga/payment_event_handler.go -package=sagamock
//go:generate mockgen -source=../../internal/usecase/queries/booking.go -destination=queries/booking.go -package=queriesmock -exclude_interfaces=BookingReadStore
//go:generate mockgen -source=../../internal/usecase/queries/device.go -destination=queries/device.go -package=queriesmock -exclude_interfaces=DeviceReadStore
//go:generate mockgen -source=../../internal/usecase/commands/device_state.go -destination=commands/device_state.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/commands/card.go -destination=commands/card.go -package=commandsmock
//go:generate mockgen -source=../../internal/usecase/token_validator.go -destination=usecase/token_validator.go -package=usecasemock
//go:generate mockgen -source=../../internal/handler/api/stripe_webhook.go -destination=api/stripe_webhook.go -package=apimock
