//go:generate mockgen -source=../cart_store.go       -destination=./mock_cart_store.go       -package=mocks
//go:generate mockgen -source=../lookup.go           -destination=./mock_lookup.go           -package=mocks
//go:generate mockgen -source=../product_cache.go    -destination=./mock_product_cache.go    -package=mocks
//go:generate mockgen -source=../notifier.go         -destination=./mock_notifier.go         -package=mocks
//go:generate mockgen -source=../cart_validator.go   -destination=./mock_cart_validator.go   -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../cart_service.go     -destination=./mock_cart_service.go     -package=mocks

package mocks
