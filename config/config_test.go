package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.UpstreamBase), ShouldEqual, constant.DefaultUpstream)
			So(viper.GetString(key.ServerAddr), ShouldEqual, constant.DefaultAddr)
		})

		Convey("Should register every defined field", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
			So(len(EnvExposed), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("upstream.default_lang")
			So(result, ShouldEqual, "upstream_default_lang")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the upstream base field", t, func() {
		field := Default[key.UpstreamBase]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "STREAMBOX_UPSTREAM_BASE")
		})

		Convey("Type should be string", func() {
			So(field.typeName(), ShouldEqual, "string")
		})
	})

	Convey("Given the rate limit field", t, func() {
		field := Default[key.UpstreamRateLimit]

		Convey("Type should be int", func() {
			So(field.typeName(), ShouldEqual, "int")
		})
	})
}
