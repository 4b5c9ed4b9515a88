package medusa

// Storage.
const (
	DefaultMinioBucket = "medusa-media"

	resolveFileModule    = "@medusajs/file"
	resolveMinioProvider = "./src/modules/minio-file"
	resolveLocalProvider = "@medusajs/file-local"

	localUploadDir  = "static"
	staticURLSuffix = "/static"
)

// Eventing.
const (
	resolveEventBusRedis       = "@medusajs/event-bus-redis"
	resolveWorkflowEngineRedis = "@medusajs/workflow-engine-redis"
)

// Notifications.
const (
	resolveNotificationModule = "@medusajs/notification"
	resolveSendgridProvider   = "@medusajs/notification-sendgrid"
	resolveResendProvider     = "./src/modules/email-notifications"

	channelEmail = "email"
)

// Payments.
const (
	resolvePaymentModule  = "@medusajs/payment"
	resolveStripeProvider = "@medusajs/payment-stripe"
)

// resolveStorageModule returns the single file module. Remote object storage
// is used only when fully credentialed; local storage is the unconditional
// fallback.
func (r *resolver) resolveStorageModule(backendURL string) Module {
	provider := Provider{
		Resolve: resolveLocalProvider,
		ID:      "local",
		Options: Options{
			"upload_dir":  localUploadDir,
			"backend_url": backendURL + staticURLSuffix,
		},
	}

	if v, ok := groupMinio.Values(r.snap); ok {
		provider = Provider{
			Resolve: resolveMinioProvider,
			ID:      "minio",
			Options: Options{
				"endPoint":  v["MINIO_ENDPOINT"],
				"accessKey": v["MINIO_ACCESS_KEY"],
				"secretKey": v["MINIO_SECRET_KEY"],
				"bucket":    r.snap.GetOr("MINIO_BUCKET", DefaultMinioBucket),
			},
		}
	}

	return Module{
		Key:       KeyFile,
		Resolve:   resolveFileModule,
		Providers: []Provider{provider},
	}
}

// resolveEventingModules returns the event bus and workflow engine, both
// backed by the same Redis URL, or nothing when Redis is not configured.
func (r *resolver) resolveEventingModules(out *Resolved) []Module {
	v, ok := groupRedis.Values(r.snap)
	if !ok {
		return nil
	}

	url := v["REDIS_URL"]
	out.Project.RedisURL = url

	return []Module{
		{
			Key:     KeyEventBus,
			Resolve: resolveEventBusRedis,
			Options: Options{"redisUrl": url},
		},
		{
			Key:     KeyWorkflowEngine,
			Resolve: resolveWorkflowEngineRedis,
			Options: Options{"redis": Options{"url": url}},
		},
	}
}

// resolveNotificationModule returns the notification module with one provider
// per satisfied mail group, SendGrid first. It returns false when neither
// group is satisfied.
func (r *resolver) resolveNotificationModule() (Module, bool) {
	var providers []Provider

	if v, ok := groupSendgrid.Values(r.snap); ok {
		providers = append(providers, mailProvider(resolveSendgridProvider, "sendgrid",
			v["SENDGRID_API_KEY"], v["SENDGRID_FROM_EMAIL"]))
	}

	if v, ok := groupResend.Values(r.snap); ok {
		providers = append(providers, mailProvider(resolveResendProvider, "resend",
			v["RESEND_API_KEY"], v["RESEND_FROM_EMAIL"]))
	}

	if len(providers) == 0 {
		return Module{}, false
	}

	return Module{
		Key:       KeyNotification,
		Resolve:   resolveNotificationModule,
		Providers: providers,
	}, true
}

func mailProvider(resolve, id, apiKey, from string) Provider {
	return Provider{
		Resolve: resolve,
		ID:      id,
		Options: Options{
			"channels": []string{channelEmail},
			"api_key":  apiKey,
			"from":     from,
		},
	}
}

// resolvePaymentModule returns the payment module with the Stripe provider.
func (r *resolver) resolvePaymentModule() (Module, bool) {
	v, ok := groupStripe.Values(r.snap)
	if !ok {
		return Module{}, false
	}

	return Module{
		Key:     KeyPayment,
		Resolve: resolvePaymentModule,
		Providers: []Provider{{
			Resolve: resolveStripeProvider,
			ID:      "stripe",
			Options: Options{
				"apiKey":        v["STRIPE_API_KEY"],
				"webhookSecret": v["STRIPE_WEBHOOK_SECRET"],
			},
		}},
	}, true
}
